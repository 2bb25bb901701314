package main

import (
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"github.com/ttpr0/go-trip/attr"
	"github.com/ttpr0/go-trip/batched/manytomany"
	"github.com/ttpr0/go-trip/comps"
	"github.com/ttpr0/go-trip/graph"
	"github.com/ttpr0/go-trip/preproc"
	"github.com/ttpr0/go-trip/routing"
	. "github.com/ttpr0/go-trip/util"
)

//**********************************************************
// profile
//**********************************************************

type IRoutingProfile interface {
	Profile() ProfileType
	Vehicle() VehicleType
	Metric() MetricType
	SetManager(manager *RoutingManager)

	GetGraph() graph.IGraph
	GetCHGraph() Optional[graph.ICHGraph]
	GetAttributes() Optional[attr.IAttributes]

	// many-to-many engine, uses the contraction hierarchy if available
	GetManyToMany() manytomany.IManyToMany
	GetRouter() routing.IRouter

	_GetMetadata() ProfileMeta
}

type PrepDict = Dict[ProfileType, Tuple[*comps.GraphBase, *attr.GraphAttributes]]

type ProfileHandler struct {
	Build func(string, SourceOptions, IProfileOptions, PrepDict) (IRoutingProfile, error)
	Load  func(string, ProfileMeta) (IRoutingProfile, error)
}

var PROFILE_HANDLERS = Dict[ProfileType, ProfileHandler]{
	DRIVING: {
		Build: BuildDrivingProfile,
		Load:  LoadDrivingProfile,
	},
	WALKING: {
		Build: BuildWalkingProfile,
		Load:  LoadWalkingProfile,
	},
}

type ProfileMeta struct {
	Type ProfileType     `json:"type"`
	Meta json.RawMessage `json:"meta"`
}

//**********************************************************
// shared profile data
//**********************************************************

type _ProfileData struct {
	manager *RoutingManager
	typ     ProfileType
	metric  MetricType
	vehicle VehicleType

	base   comps.IGraphBase
	weight comps.IWeighting
	index  comps.IGraphIndex
	ch     Optional[*comps.CH]

	once     sync.Once
	g        graph.IGraph
	ch_graph Optional[graph.ICHGraph]
	table    manytomany.IManyToMany
	router   routing.IRouter
}

func _NewProfileData(typ ProfileType, metric MetricType, vehicle VehicleType, base comps.IGraphBase, weight comps.IWeighting, ch Optional[*comps.CH]) *_ProfileData {
	return &_ProfileData{
		typ:     typ,
		metric:  metric,
		vehicle: vehicle,
		base:    base,
		weight:  weight,
		index:   comps.NewGraphIndex(base),
		ch:      ch,
	}
}

func (self *_ProfileData) Profile() ProfileType {
	return self.typ
}
func (self *_ProfileData) Vehicle() VehicleType {
	return self.vehicle
}
func (self *_ProfileData) Metric() MetricType {
	return self.metric
}
func (self *_ProfileData) SetManager(manager *RoutingManager) {
	self.manager = manager
}
func (self *_ProfileData) GetGraph() graph.IGraph {
	self._Init()
	return self.g
}
func (self *_ProfileData) GetCHGraph() Optional[graph.ICHGraph] {
	self._Init()
	return self.ch_graph
}
func (self *_ProfileData) GetAttributes() Optional[attr.IAttributes] {
	if self.manager == nil {
		return None[attr.IAttributes]()
	}
	return self.manager._GetAttributes(self.typ)
}
func (self *_ProfileData) GetManyToMany() manytomany.IManyToMany {
	self._Init()
	return self.table
}
func (self *_ProfileData) GetRouter() routing.IRouter {
	self._Init()
	return self.router
}

// Builds graphs and engines on first use, attributes must be available by then.
func (self *_ProfileData) _Init() {
	self.once.Do(func() {
		attributes := self.GetAttributes()
		index := Some(self.index)
		if self.ch.HasValue() {
			ch_graph := graph.BuildCHGraph(self.base, self.weight, self.ch.Value, index)
			self.g = ch_graph
			self.ch_graph = Some(graph.ICHGraph(ch_graph))
			self.table = manytomany.NewCHManyToMany(ch_graph)
			self.router = routing.NewCHRouter(ch_graph, attributes)
		} else {
			g := graph.BuildGraph(self.base, self.weight, index)
			self.g = g
			self.ch_graph = None[graph.ICHGraph]()
			self.table = manytomany.NewDijkstraManyToMany(g)
			self.router = routing.NewDijkstraRouter(g, attributes)
		}
	})
}

// Loads base, weight and optionally the contraction hierarchy concurrently.
func _LoadProfileComponents(prefix string, with_ch bool) (*comps.GraphBase, *comps.DefaultWeighting, Optional[*comps.CH], error) {
	var base *comps.GraphBase
	var weight *comps.DefaultWeighting
	var ch *comps.CH

	var group errgroup.Group
	group.Go(func() error {
		var err error
		base, err = comps.Load[*comps.GraphBase](prefix)
		return err
	})
	group.Go(func() error {
		var err error
		weight, err = comps.Load[*comps.DefaultWeighting](prefix)
		return err
	})
	if with_ch {
		group.Go(func() error {
			var err error
			ch, err = comps.Load[*comps.CH](prefix)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, None[*comps.CH](), fmt.Errorf("failed to load profile %v: %w", prefix, err)
	}
	if with_ch {
		return base, weight, Some(ch), nil
	}
	return base, weight, None[*comps.CH](), nil
}

func _BuildWeighting(metric MetricType, base comps.IGraphBase, attributes attr.IAttributes) *comps.DefaultWeighting {
	slog.Info("Building metric: " + metric.String())
	switch metric {
	case SHORTEST:
		return comps.BuildShortestWeighting(base, attributes)
	default:
		return comps.BuildFastestWeighting(base, attributes)
	}
}

//**********************************************************
// driving profile
//**********************************************************

type DrivingProfile struct {
	*_ProfileData
}

func (self *DrivingProfile) _GetMetadata() ProfileMeta {
	meta := DrivingMeta{
		Metric:  self.metric,
		Vehicle: self.vehicle,
		CH:      self.ch.HasValue(),
	}
	meta_str, _ := json.Marshal(meta)
	return ProfileMeta{
		Type: DRIVING,
		Meta: meta_str,
	}
}

type DrivingMeta struct {
	Metric  MetricType  `json:"metric"`
	Vehicle VehicleType `json:"vehicle"`

	CH bool `json:"ch"`
}

func LoadDrivingProfile(path string, p_meta ProfileMeta) (IRoutingProfile, error) {
	if p_meta.Type != DRIVING {
		return nil, fmt.Errorf("%v is not a driving profile", path)
	}
	meta := DrivingMeta{}
	if err := json.Unmarshal(p_meta.Meta, &meta); err != nil {
		return nil, fmt.Errorf("invalid metadata of profile %v: %w", path, err)
	}

	base, weight, ch, err := _LoadProfileComponents(path, meta.CH)
	if err != nil {
		return nil, err
	}
	return &DrivingProfile{
		_NewProfileData(DRIVING, meta.Metric, meta.Vehicle, base, weight, ch),
	}, nil
}

func BuildDrivingProfile(out_path string, source SourceOptions, options_ IProfileOptions, prep_cache PrepDict) (IRoutingProfile, error) {
	options := options_.(DrivingOptions)
	slog.Info("Building driving profile from " + source.OSM)

	base, attributes, err := PrepareGraph(DRIVING, source.OSM, prep_cache)
	if err != nil {
		return nil, err
	}
	weight := _BuildWeighting(options.Metric, base, attributes)

	ch := None[*comps.CH]()
	if options.Preparation.Contraction {
		slog.Info("Building contraction hierarchy")
		ch = Some(preproc.CalcContraction(base, weight))
		slog.Info("Contraction hierarchy successfully built")
	}

	if err := comps.Store(base, out_path); err != nil {
		return nil, err
	}
	if err := comps.Store(weight, out_path); err != nil {
		return nil, err
	}
	if ch.HasValue() {
		if err := comps.Store(ch.Value, out_path); err != nil {
			return nil, err
		}
	}

	return &DrivingProfile{
		_NewProfileData(DRIVING, options.Metric, options.Vehicle, base, weight, ch),
	}, nil
}

//**********************************************************
// walking profile
//**********************************************************

type WalkingProfile struct {
	*_ProfileData
}

func (self *WalkingProfile) _GetMetadata() ProfileMeta {
	meta := WalkingMeta{
		Metric:  self.metric,
		Vehicle: self.vehicle,
	}
	meta_str, _ := json.Marshal(meta)
	return ProfileMeta{
		Type: WALKING,
		Meta: meta_str,
	}
}

type WalkingMeta struct {
	Metric  MetricType  `json:"metric"`
	Vehicle VehicleType `json:"vehicle"`
}

func LoadWalkingProfile(path string, p_meta ProfileMeta) (IRoutingProfile, error) {
	if p_meta.Type != WALKING {
		return nil, fmt.Errorf("%v is not a walking profile", path)
	}
	meta := WalkingMeta{}
	if err := json.Unmarshal(p_meta.Meta, &meta); err != nil {
		return nil, fmt.Errorf("invalid metadata of profile %v: %w", path, err)
	}

	base, weight, _, err := _LoadProfileComponents(path, false)
	if err != nil {
		return nil, err
	}
	return &WalkingProfile{
		_NewProfileData(WALKING, meta.Metric, meta.Vehicle, base, weight, None[*comps.CH]()),
	}, nil
}

func BuildWalkingProfile(out_path string, source SourceOptions, options_ IProfileOptions, prep_cache PrepDict) (IRoutingProfile, error) {
	options := options_.(WalkingOptions)
	slog.Info("Building walking profile from " + source.OSM)

	base, attributes, err := PrepareGraph(WALKING, source.OSM, prep_cache)
	if err != nil {
		return nil, err
	}
	weight := _BuildWeighting(options.Metric, base, attributes)

	if err := comps.Store(base, out_path); err != nil {
		return nil, err
	}
	if err := comps.Store(weight, out_path); err != nil {
		return nil, err
	}

	return &WalkingProfile{
		_NewProfileData(WALKING, options.Metric, options.Vehicle, base, weight, None[*comps.CH]()),
	}, nil
}
