package parser

import (
	"strconv"

	"github.com/ttpr0/go-trip/attr"
)

//*******************************************
// utility methods
//*******************************************

func _IsOneway(oneway string, str_type attr.RoadType) bool {
	if oneway == "no" || oneway == "false" || oneway == "0" {
		return false
	}
	if str_type == attr.MOTORWAY || str_type == attr.TRUNK || str_type == attr.MOTORWAY_LINK || str_type == attr.TRUNK_LINK {
		return true
	} else if oneway == "yes" || oneway == "true" || oneway == "1" || oneway == "-1" {
		return true
	}
	return false
}

func _IsReversedOneway(oneway string) bool {
	return oneway == "-1"
}

// Parses a maxspeed tag, returns false if the tag is unset.
func _ParseMaxspeed(maxspeed string) (int32, bool) {
	switch maxspeed {
	case "":
		return 0, false
	case "walk":
		return 10, true
	case "none":
		return 110, true
	}
	t, err := strconv.Atoi(maxspeed)
	if err != nil {
		return 20, true
	}
	return int32(t), true
}

func _GetORSTravelSpeed(streettype attr.RoadType, maxspeed string, tracktype string, surface string) int32 {
	var speed int32

	// check if maxspeed is set
	if s, ok := _ParseMaxspeed(maxspeed); ok {
		speed = s * 9 / 10
	} else {
		switch streettype {
		case attr.MOTORWAY:
			speed = 100
		case attr.TRUNK:
			speed = 85
		case attr.MOTORWAY_LINK, attr.TRUNK_LINK:
			speed = 60
		case attr.PRIMARY:
			speed = 65
		case attr.SECONDARY:
			speed = 60
		case attr.TERTIARY:
			speed = 50
		case attr.PRIMARY_LINK, attr.SECONDARY_LINK:
			speed = 50
		case attr.TERTIARY_LINK:
			speed = 40
		case attr.UNCLASSIFIED:
			speed = 30
		case attr.RESIDENTIAL:
			speed = 30
		case attr.LIVING_STREET:
			speed = 10
		case attr.ROAD:
			speed = 20
		case attr.TRACK:
			switch tracktype {
			case "grade1":
				speed = 40
			case "grade2":
				speed = 30
			case "grade3":
				speed = 20
			case "grade4":
				speed = 15
			case "grade5":
				speed = 10
			default:
				speed = 15
			}
		default:
			speed = 20
		}
	}

	// surface caps the speed
	switch surface {
	case "cement", "compacted":
		speed = min(speed, 80)
	case "fine_gravel":
		speed = min(speed, 60)
	case "paving_stones", "metal", "bricks":
		speed = min(speed, 40)
	case "grass", "wood", "sett", "grass_paver", "gravel", "unpaved", "ground", "dirt", "pebblestone", "tartan":
		speed = min(speed, 30)
	case "cobblestone", "clay":
		speed = min(speed, 20)
	case "earth", "stone", "rocky", "sand":
		speed = min(speed, 15)
	case "mud":
		speed = min(speed, 10)
	}

	if speed <= 0 {
		speed = 10
	}
	if speed > 255 {
		speed = 255
	}
	return speed
}
