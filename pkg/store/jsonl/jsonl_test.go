package jsonl_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"intergen/pkg/domain"
	"intergen/pkg/geom"
	"intergen/pkg/store/jsonl"
)

type record struct {
	RunID           string `json:"runId"`
	Name            string `json:"name"`
	FilmSurfaceName string `json:"filmSurfaceName"`
	SubsSurfaceName string `json:"subsSurfaceName"`
	Mismatch        struct {
		U     float64 `json:"mismatchU"`
		V     float64 `json:"mismatchV"`
		Angle float64 `json:"mismatchAngle"`
		Area1 float64 `json:"area1"`
		Area2 float64 `json:"area2"`
	} `json:"mismatch"`
	Interface struct {
		Lattice [3][3]float64 `json:"lattice"`
		Sites   []struct {
			Species string     `json:"species"`
			Frac    [3]float64 `json:"frac"`
			Tag     string     `json:"tag"`
		} `json:"sites"`
	} `json:"interface"`
	Generated json.RawMessage `json:"generatedInterface"`
	Left      json.RawMessage `json:"left"`
}

func sampleCandidate() domain.Candidate {
	iface := domain.Structure{
		Lattice: geom.Mat3{{2.7, 0, 0}, {0, 2.7, 0}, {0, 0, 8.5}},
		Sites: []domain.Site{
			{Species: "Ag", Frac: geom.Vec3{0, 0, 0.25}, Tag: domain.TagBottom},
			{Species: "Si", Frac: geom.Vec3{0.5, 0.5, 0.75}, Tag: domain.TagTop},
		},
	}

	return domain.Candidate{
		Name:            "Interface-ag_si_film_miller_0_0_1_sub_miller_0_0_1_film_thickness_1_subs_thickness_1_separation_2.5_disp_0_0",
		FilmSurfaceName: "Surface-si_film_miller_0_0_1_film_thickness_1",
		SubsSurfaceName: "Surface-ag_subs_miller_0_0_1_subs_thickness_1",
		Mismatch:        domain.Mismatch{U: 0.05, V: -0.05, AngleDeg: 0, Area1: 7.29, Area2: 7.29},
		Interface:       iface,
		Displaced:       iface,
	}
}

func TestWriteCandidateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := jsonl.New(&buf, "run-1")

	require.NoError(t, w.WriteCandidate(context.Background(), sampleCandidate()))
	require.NoError(t, w.Close())

	line := buf.String()
	require.True(t, strings.HasSuffix(line, "\n"))

	var rec record
	require.NoError(t, json.Unmarshal([]byte(line), &rec))

	require.Equal(t, "run-1", rec.RunID)
	require.Equal(t, sampleCandidate().Name, rec.Name)
	require.Equal(t, "Surface-si_film_miller_0_0_1_film_thickness_1", rec.FilmSurfaceName)
	require.Equal(t, "Surface-ag_subs_miller_0_0_1_subs_thickness_1", rec.SubsSurfaceName)
	require.InDelta(t, 0.05, rec.Mismatch.U, 1e-12)
	require.InDelta(t, -0.05, rec.Mismatch.V, 1e-12)
	require.InDelta(t, 7.29, rec.Mismatch.Area1, 1e-12)

	require.Equal(t, 8.5, rec.Interface.Lattice[2][2])
	require.Len(t, rec.Interface.Sites, 2)
	require.Equal(t, "Ag", rec.Interface.Sites[0].Species)
	require.Equal(t, "bottom", rec.Interface.Sites[0].Tag)
	require.Equal(t, "top", rec.Interface.Sites[1].Tag)

	// same geometry without displacement
	require.NotEmpty(t, rec.Generated)
	// partition fields are omitted when no partition was requested
	require.Empty(t, rec.Left)
}

func TestWriteCandidateOneLineEach(t *testing.T) {
	var buf bytes.Buffer
	w := jsonl.New(&buf, "")

	require.NoError(t, w.WriteCandidate(context.Background(), sampleCandidate()))
	require.NoError(t, w.WriteCandidate(context.Background(), sampleCandidate()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var rec map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		// empty run identifier is omitted entirely
		_, ok := rec["runId"]
		require.False(t, ok)
	}
}

func TestWritePartitionedCandidate(t *testing.T) {
	cand := sampleCandidate()
	left := domain.Structure{Lattice: cand.Interface.Lattice}
	middle := cand.Interface
	right := domain.Structure{Lattice: cand.Interface.Lattice}
	cand.Left, cand.Middle, cand.Right = &left, &middle, &right

	var buf bytes.Buffer
	w := jsonl.New(&buf, "run-2")
	require.NoError(t, w.WriteCandidate(context.Background(), cand))

	var rec map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	for _, key := range []string{"left", "middle", "right"} {
		require.Contains(t, rec, key)
	}
}
