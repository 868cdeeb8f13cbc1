package divelog_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/divelink/divelink-go/pkg/divelog"
	"github.com/divelink/divelink-go/pkg/parser"
	"github.com/divelink/divelink-go/pkg/shearwater"
	"github.com/divelink/divelink-go/pkg/status"
)

var start = time.Date(2024, time.March, 9, 8, 15, 0, 0, time.UTC)

func testDive() shearwater.Dive {
	return shearwater.Dive{
		Start: start,
		Mixes: [shearwater.GasMixCount]shearwater.Mix{
			{Oxygen: 21},
			{Oxygen: 18, Helium: 45},
		},
		SurfacePressure: 1013,
		Density:         1025,
		MaxDepth:        31,
		DiveTime:        47,
		Records: []shearwater.Record{
			{Depth: 123, StopTime: 15, Oxygen: 21, Temperature: 20},
			{Depth: 200, DecoDepth: 6, StopTime: 2, Oxygen: 18, Helium: 45, Temperature: 18},
		},
	}
}

func build(t *testing.T, d shearwater.Dive) *divelog.Dive {
	t.Helper()
	data, err := shearwater.EncodeDive(d)
	if err != nil {
		t.Fatalf("EncodeDive failed: %v", err)
	}
	s, err := parser.NewSession(shearwater.Parser, parser.WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if err := s.SetData(data); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	dive, err := divelog.Build(s)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return dive
}

func TestBuildSummary(t *testing.T) {
	d := build(t, testDive())

	if d.Device != "shearwater-predator" {
		t.Errorf("Device: got %q", d.Device)
	}
	if !d.Start.Equal(start) {
		t.Errorf("Start: got %v, want %v", d.Start, start)
	}
	if d.Duration != 47*time.Minute {
		t.Errorf("Duration: got %v", d.Duration)
	}
	if d.MaxDepth != 31 {
		t.Errorf("MaxDepth: got %v", d.MaxDepth)
	}
	if math.Abs(d.Atmospheric-1.013) > 1e-9 {
		t.Errorf("Atmospheric: got %v", d.Atmospheric)
	}
	if d.Salinity == nil || d.Salinity.Water != "salt" || d.Salinity.Density != 1025 {
		t.Errorf("Salinity: got %+v", d.Salinity)
	}
	if len(d.GasMixes) != shearwater.GasMixCount {
		t.Fatalf("GasMixes: got %d, want %d", len(d.GasMixes), shearwater.GasMixCount)
	}
	if mix := d.GasMixes[1]; math.Abs(mix.Helium-0.45) > 1e-9 || math.Abs(mix.Nitrogen-0.37) > 1e-9 {
		t.Errorf("GasMixes[1]: got %+v", mix)
	}
}

func TestBuildProfile(t *testing.T) {
	d := build(t, testDive())

	if len(d.Profile) != 2 {
		t.Fatalf("Profile: got %d points, want 2", len(d.Profile))
	}
	p := d.Profile[1]
	if p.Time != 20*time.Second || p.Depth != 20 {
		t.Errorf("point 1: got %v at %v m", p.Time, p.Depth)
	}
	if p.Temperature == nil || *p.Temperature != 18 {
		t.Errorf("point 1 temperature: got %v", p.Temperature)
	}
	want := []divelog.Event{
		{Type: "gaschange", Value: 18 | 45<<16},
		{Type: "decostop", Value: 6 | 120<<16},
	}
	if len(p.Events) != len(want) {
		t.Fatalf("events: got %+v", p.Events)
	}
	for i := range want {
		if p.Events[i] != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, p.Events[i], want[i])
		}
	}
}

func TestBuildRejectsBadData(t *testing.T) {
	s, err := parser.NewSession(shearwater.Parser)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if err := s.SetData(make([]byte, 16)); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	if _, err := divelog.Build(s); status.Of(err) != status.DataFormat {
		t.Errorf("Build: got %v, want DATAFORMAT", status.Of(err))
	}
}

func TestWriteJSON(t *testing.T) {
	d := build(t, testDive())

	var buf bytes.Buffer
	if err := divelog.Write(&buf, divelog.FormatJSON, d); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a JSON object: %v", err)
	}
	if got["device"] != "shearwater-predator" {
		t.Errorf("device: got %v", got["device"])
	}
	if profile, ok := got["profile"].([]any); !ok || len(profile) != 2 {
		t.Errorf("profile: got %v", got["profile"])
	}

	buf.Reset()
	if err := divelog.WriteJSON(&buf, d, d); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var list []any
	if err := json.Unmarshal(buf.Bytes(), &list); err != nil || len(list) != 2 {
		t.Errorf("two dives: got %d entries, err %v", len(list), err)
	}
}

func TestWriteCSV(t *testing.T) {
	d := build(t, testDive())

	var buf bytes.Buffer
	if err := divelog.Write(&buf, divelog.FormatCSV, d); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(divelog.CSVHeader, ",") {
		t.Errorf("header: got %v", rows[0])
	}
	want := []string{"1", "2024-03-09T08:15:00Z", "10", "12.30", "20.0", "gaschange=21;ndl=900"}
	if strings.Join(rows[1], ",") != strings.Join(want, ",") {
		t.Errorf("row 1: got %v, want %v", rows[1], want)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    divelog.Format
		wantErr bool
	}{
		{"json", divelog.FormatJSON, false},
		{"CSV", divelog.FormatCSV, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := divelog.ParseFormat(tt.name)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.name, got, err)
		}
	}
}
