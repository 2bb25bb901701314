package main

import (
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-trip/attr"
	"github.com/ttpr0/go-trip/comps"
	. "github.com/ttpr0/go-trip/util"
)

// Builds all configured profiles if requested or if the graph directory
// is empty, otherwise loads them from the stored metadata.
func NewRoutingManager(config Config) (*RoutingManager, error) {
	path := config.GraphPath
	build := config.BuildGraphs
	if IsDirectoryEmpty(path) {
		build = true
	}
	graph_path := path + "/"

	manager := &RoutingManager{
		config:     config,
		profiles:   NewDict[string, IRoutingProfile](10),
		attributes: NewDict[ProfileType, attr.IAttributes](10),
	}

	if build {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create graph directory: %w", err)
		}
		prep_cache := NewDict[ProfileType, Tuple[*comps.GraphBase, *attr.GraphAttributes]](10)
		profile_meta := NewDict[string, ProfileMeta](10)
		for name, options := range config.Build.Profiles {
			if options == nil || options.Value == nil {
				continue
			}
			typ := options.Value.Type()
			if !PROFILE_HANDLERS.ContainsKey(typ) {
				return nil, fmt.Errorf("%w: no handler for profile type %v", ErrInvalidOptions, typ)
			}
			handler := PROFILE_HANDLERS[typ]
			profile, err := handler.Build(graph_path+name, config.Build.Source, options.Value, prep_cache)
			if err != nil {
				return nil, fmt.Errorf("failed to build profile %v: %w", name, err)
			}
			manager.AddProfile(name, profile)
			profile_meta[name] = profile._GetMetadata()
			slog.Info("Profile " + name + " successfully built")
		}
		attr_meta := NewList[ProfileType](4)
		for typ, data := range prep_cache {
			att := data.B
			if err := attr.Store(att, graph_path+"attr-"+typ.String()); err != nil {
				return nil, err
			}
			manager.attributes.Set(typ, att)
			attr_meta.Add(typ)
		}
		meta := RoutingManagerMeta{
			Profiles:   profile_meta,
			Attributes: attr_meta,
		}
		if err := WriteJSONToFile(meta, graph_path+"meta"); err != nil {
			return nil, err
		}
	} else {
		meta, err := ReadJSONFromFile[RoutingManagerMeta](graph_path + "meta")
		if err != nil {
			return nil, fmt.Errorf("failed to read graph metadata: %w", err)
		}
		for name, item := range meta.Profiles {
			if !PROFILE_HANDLERS.ContainsKey(item.Type) {
				return nil, fmt.Errorf("%w: no handler for profile type %v", ErrInvalidOptions, item.Type)
			}
			handler := PROFILE_HANDLERS[item.Type]
			profile, err := handler.Load(graph_path+name, item)
			if err != nil {
				return nil, err
			}
			manager.AddProfile(name, profile)
			slog.Info("Profile " + name + " successfully loaded")
		}
		for _, typ := range meta.Attributes {
			att, err := attr.Load(graph_path + "attr-" + typ.String())
			if err != nil {
				return nil, fmt.Errorf("failed to load %v attributes: %w", typ, err)
			}
			manager.attributes.Set(typ, att)
		}
	}

	return manager, nil
}

type RoutingManagerMeta struct {
	Profiles   Dict[string, ProfileMeta] `json:"profiles"`
	Attributes List[ProfileType]         `json:"attributes"`
}

type RoutingManager struct {
	config     Config
	profiles   Dict[string, IRoutingProfile]
	attributes Dict[ProfileType, attr.IAttributes]
}

// Registers a profile, used while building or loading.
func (self *RoutingManager) AddProfile(name string, profile IRoutingProfile) {
	profile.SetManager(self)
	self.profiles.Set(name, profile)
}

func (self *RoutingManager) SetAttributes(typ ProfileType, attributes attr.IAttributes) {
	self.attributes.Set(typ, attributes)
}

func (self *RoutingManager) GetProfile(profile string) Optional[IRoutingProfile] {
	if self.profiles.ContainsKey(profile) {
		return Some(self.profiles.Get(profile))
	}
	return None[IRoutingProfile]()
}

func (self *RoutingManager) GetMatchingProfile(profile ProfileType, vehicle VehicleType, metric MetricType) Optional[IRoutingProfile] {
	for _, p := range self.profiles {
		if p.Profile() == profile && p.Vehicle() == vehicle && p.Metric() == metric {
			return Some(p)
		}
	}
	return None[IRoutingProfile]()
}

func (self *RoutingManager) _GetAttributes(profile ProfileType) Optional[attr.IAttributes] {
	if self.attributes.ContainsKey(profile) {
		return Some(self.attributes.Get(profile))
	}
	return None[attr.IAttributes]()
}

func (self *RoutingManager) _GetServiceConfig() Config {
	return self.config
}
