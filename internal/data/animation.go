package data

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skullrun/game/internal/anim"
)

// FrameDef is one frame of a clip in animations.yaml.
type FrameDef struct {
	Sheet string `yaml:"sheet"`
	Index int    `yaml:"index"`
	MS    int    `yaml:"ms"`
}

// animationFile maps set name → clip name → frames.
type animationFile map[string]map[string][]FrameDef

// LoadAnimations loads animations.yaml into a library bound to clock.
// The button set is generated rather than listed.
func LoadAnimations(path string, clock *anim.Clock) (*anim.Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read animations: %w", err)
	}
	return ParseAnimations(raw, clock)
}

func ParseAnimations(raw []byte, clock *anim.Clock) (*anim.Library, error) {
	var file animationFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse animations: %w", err)
	}
	lib := anim.NewLibrary(clock)
	for set, clips := range file {
		defs := make(map[string]anim.Clip, len(clips))
		for name, frames := range clips {
			if len(frames) == 0 {
				return nil, fmt.Errorf("parse animations: %s/%s has no frames", set, name)
			}
			var c anim.Clip
			for _, f := range frames {
				c.Frames = append(c.Frames, anim.Frame{Sheet: f.Sheet, Index: f.Index})
				c.Durations = append(c.Durations, time.Duration(f.MS)*time.Millisecond)
			}
			defs[name] = c
		}
		lib.Define(set, defs)
	}
	if _, ok := file["button"]; !ok {
		lib.Define("button", ButtonClips())
	}
	return lib, nil
}

// buttonRows maps a button direction to its row on the buttons sheet.
var buttonRows = [4]int{0, 4, 2, 6}

// ButtonClips builds the up/down clips for every direction and door id.
// Clip names are "up_<dir>_<door>" and "down_<dir>_<door>".
func ButtonClips() map[string]anim.Clip {
	clips := make(map[string]anim.Clip, 80)
	for dir, row := range buttonRows {
		for door := 0; door < 10; door++ {
			base := row*10 + door*2
			suffix := strconv.Itoa(dir) + "_" + strconv.Itoa(door)
			clips["up_"+suffix] = still("buttons", base)
			clips["down_"+suffix] = still("buttons", base+1)
		}
	}
	return clips
}

func still(sheet string, index int) anim.Clip {
	return anim.Clip{
		Frames:    []anim.Frame{{Sheet: sheet, Index: index}},
		Durations: []time.Duration{100 * time.Millisecond},
	}
}
