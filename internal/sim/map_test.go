package sim

import (
	"errors"
	"testing"
)

func TestParseMap_Layout(t *testing.T) {
	// Row 0 of the text is the top of the map; grid y grows upward.
	text := "v#\nv#\n>D\n"
	cm, err := ParseMap(text, DefaultLegend())
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}

	if cm.Grid.Width != 2 || cm.Grid.Height != 3 {
		t.Fatalf("grid = %dx%d, want 2x3", cm.Grid.Width, cm.Grid.Height)
	}

	top := cm.Grid.At(0, 2)
	if !top.Road || top.Direction != DirDown {
		t.Errorf("cell (0,2) = %+v, want a down road", top)
	}
	if !cm.Grid.At(1, 2).Obstacle {
		t.Error("cell (1,2) should be an obstacle")
	}
	if !cm.Grid.At(1, 0).Destination {
		t.Error("cell (1,0) should be a destination")
	}
	if len(cm.Destinations) != 1 {
		t.Errorf("got %d destinations, want 1", len(cm.Destinations))
	}

	// Edge roads pointing into the map are spawn points: the right road
	// at the left edge and the down road at the top edge.
	if len(cm.SpawnPoints) != 2 || cm.SpawnPoints[0] != [2]int{0, 0} || cm.SpawnPoints[1] != [2]int{0, 2} {
		t.Errorf("spawn points = %v, want [[0 0] [0 2]]", cm.SpawnPoints)
	}
}

func TestParseMap_TrafficLights(t *testing.T) {
	cm, err := ParseMap(">>S>D\n", DefaultLegend())
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}

	if len(cm.Lights) != 1 {
		t.Fatalf("got %d lights, want 1", len(cm.Lights))
	}
	light := cm.Lights[0]
	if light.Green {
		t.Error("S lights start red")
	}
	if light.Direction != DirRight {
		t.Errorf("light direction = %v, want Right (inherited from neighbor road)", light.Direction)
	}
	if light.Cycle != DefaultLegend().LightCycles['S'] {
		t.Errorf("light cycle = %d, want %d", light.Cycle, DefaultLegend().LightCycles['S'])
	}

	// Light cells are drivable roads.
	cell := cm.Grid.At(2, 0)
	if !cell.Road || cell.Light == nil || cell.Direction != DirRight {
		t.Errorf("light cell = %+v, want drivable right-road with light", cell)
	}

	green, err := ParseMap(">>s>D\n", DefaultLegend())
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if !green.Lights[0].Green {
		t.Error("s lights start green")
	}
}

func TestParseMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", "\n\n"},
		{"ragged rows", ">>>\n>>\n"},
		{"unknown symbol", ">>X>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap(tt.text, DefaultLegend())
			if !errors.Is(err, ErrInvalidMap) {
				t.Errorf("got error %v, want ErrInvalidMap", err)
			}
		})
	}
}

func TestDirectionOffset(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirUp, 0, 1},
		{DirDown, 0, -1},
		{DirLeft, -1, 0},
		{DirRight, 1, 0},
		{DirNone, 0, 0},
	}

	for _, tt := range tests {
		dx, dy := tt.dir.Offset()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Offset() = (%d, %d), want (%d, %d)", tt.dir, dx, dy, tt.dx, tt.dy)
		}
	}
}
