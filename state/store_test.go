package state

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Record {
	return Record{
		ClearColor:     mgl32.Vec3{0, 0, 0},
		UIEnabled:      false,
		CameraPosition: mgl32.Vec3{0, 0, 3},
		CameraFront:    mgl32.Vec3{0, 0, -1},
		MouseLook:      true,
		PointLight:     true,
		SpotLight:      false,
		HDR:            false,
	}
}

func sample() Record {
	return Record{
		ClearColor:     mgl32.Vec3{0.1, 0.25, 0.333333},
		UIEnabled:      true,
		CameraPosition: mgl32.Vec3{-4.125, 2.5, 7.0000005},
		CameraFront:    mgl32.Vec3{0.57735026, -0.57735026, 0.57735026},
		MouseLook:      false,
		PointLight:     false,
		SpotLight:      true,
		HDR:            true,
	}
}

// masked keeps only the fields carried by layout, taking the rest from base.
func masked(layout Layout, src, base Record) Record {
	out := base
	for _, f := range layout.Fields {
		if p := f.float(&src); p != nil {
			*f.float(&out) = *p
		} else {
			*f.flag(&out) = *f.flag(&src)
		}
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	for _, layout := range Layouts {
		t.Run(layout.Name, func(t *testing.T) {
			store := NewStore(filepath.Join(t.TempDir(), "program_state.txt"), layout)
			require.NoError(t, store.Save(sample()))

			got := defaults()
			rep := store.Load(&got)
			require.True(t, rep.Complete(), "report: %+v", rep)
			assert.Equal(t, len(layout.Fields), rep.Applied)
			assert.Equal(t, masked(layout, sample(), defaults()), got)
		})
	}
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope", "program_state.txt"), LayoutClearColor)

	got := defaults()
	rep := store.Load(&got)

	assert.Equal(t, defaults(), got)
	assert.True(t, rep.Missing)
	assert.Zero(t, rep.Applied)
	assert.False(t, rep.Complete())
}

func TestLoad_TruncatedKeepsTrailingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	// clear colour and UI flag only
	require.NoError(t, os.WriteFile(path, []byte("0.5\n0.25\n0.125\n1\n"), 0o644))

	got := defaults()
	rep := NewStore(path, LayoutClearColor).Load(&got)

	assert.Equal(t, 4, rep.Applied)
	assert.ErrorIs(t, rep.Err, io.ErrUnexpectedEOF)
	assert.False(t, rep.Missing)

	assert.Equal(t, mgl32.Vec3{0.5, 0.25, 0.125}, got.ClearColor)
	assert.True(t, got.UIEnabled)
	assert.Equal(t, defaults().CameraPosition, got.CameraPosition)
	assert.Equal(t, defaults().CameraFront, got.CameraFront)
}

func TestLoad_TruncatedMidVector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 10 20"), 0o644))

	got := defaults()
	rep := NewStore(path, LayoutCompact).Load(&got)

	assert.Equal(t, 3, rep.Applied)
	assert.False(t, got.UIEnabled)
	assert.Equal(t, mgl32.Vec3{10, 20, 3}, got.CameraPosition)
}

func TestLoad_MalformedTokenStopsRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\nbanana\n4\n5\n6\n7\n"), 0o644))

	got := defaults()
	rep := NewStore(path, LayoutCompact).Load(&got)

	require.Error(t, rep.Err)
	assert.True(t, errors.Is(rep.Err, ErrMalformed))
	assert.Contains(t, rep.Err.Error(), "camera.position.y")
	assert.Equal(t, 2, rep.Applied)
	assert.True(t, got.UIEnabled)
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, got.CameraPosition)
	assert.Equal(t, defaults().CameraFront, got.CameraFront)
}

func TestDecode_Booleans(t *testing.T) {
	layout := Layout{Name: "flags", Fields: []Field{FieldUIEnabled, FieldHDR}}

	rec := Record{}
	n, err := Decode(strings.NewReader("1 0"), layout, &rec)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, rec.UIEnabled)
	assert.False(t, rec.HDR)

	rec = Record{HDR: true}
	n, err = Decode(strings.NewReader("0 true"), layout, &rec)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, 1, n)
	assert.True(t, rec.HDR, "malformed token must not change the field")
}

func TestDecode_RejectsNonFinite(t *testing.T) {
	layout := Layout{Name: "x", Fields: []Field{FieldPositionX}}
	for _, tok := range []string{"nan", "inf", "-Inf", "1e40"} {
		rec := Record{CameraPosition: mgl32.Vec3{7, 0, 0}}
		_, err := Decode(strings.NewReader(tok), layout, &rec)
		assert.ErrorIs(t, err, ErrMalformed, tok)
		assert.Equal(t, float32(7), rec.CameraPosition.X())
	}
}

func TestSave_RejectsNonFinite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	store := NewStore(path, LayoutClearColor)
	require.NoError(t, store.Save(defaults()))

	for _, v := range []float32{float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))} {
		rec := defaults()
		rec.CameraFront = mgl32.Vec3{0, v, -1}
		err := store.Save(rec)
		assert.ErrorIs(t, err, ErrNonFinite)
	}

	// the earlier file is left intact
	got := sample()
	rep := store.Load(&got)
	require.True(t, rep.Complete())
	assert.Equal(t, masked(LayoutClearColor, defaults(), sample()), got)
}

func TestReport_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 0 0 1 1 2 3\n"), 0o644))
	store := NewStore(path, LayoutExtended)

	rec := defaults()
	rep := store.Load(&rec)
	assert.True(t, rep.Read(FieldUIEnabled))
	assert.True(t, rep.Read(FieldPositionZ))
	assert.False(t, rep.Read(FieldFrontX))
	assert.False(t, rep.Read(FieldMouseLook))

	full := NewStore(path, LayoutClearColor)
	require.NoError(t, full.Save(sample()))
	rep = full.Load(&rec)
	assert.True(t, rep.Read(FieldFrontZ))
	assert.False(t, rep.Read(FieldMouseLook), "clearcolor files never carry mouse-look")
}

func TestDecode_AnyWhitespaceAndExtraTokens(t *testing.T) {
	in := "0.1 0.2\t0.3\r\n1\n\n  1 2 3\n0 0 -1\nextra tokens are ignored"
	rec := defaults()
	n, err := Decode(strings.NewReader(in), LayoutClearColor, &rec)
	require.NoError(t, err)
	assert.Equal(t, len(LayoutClearColor.Fields), n)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, rec.CameraPosition)
}

func TestEncode_OneTokenPerLine(t *testing.T) {
	var sb strings.Builder
	rec := defaults()
	rec.UIEnabled = true
	require.NoError(t, Encode(&sb, LayoutCompact, rec))
	assert.Equal(t, "1\n0\n0\n3\n0\n0\n-1\n", sb.String())
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("9\n", 50)), 0o644))

	require.NoError(t, NewStore(path, LayoutCompact).Save(defaults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(string(data)), len(LayoutCompact.Fields))
}

func TestExtendedReadsClearColorFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_state.txt")
	require.NoError(t, NewStore(path, LayoutClearColor).Save(sample()))

	got := defaults()
	rep := NewStore(path, LayoutExtended).Load(&got)

	assert.Equal(t, len(LayoutClearColor.Fields), rep.Applied)
	assert.Equal(t, sample().CameraFront, got.CameraFront)
	assert.Equal(t, defaults().MouseLook, got.MouseLook)
	assert.Equal(t, defaults().SpotLight, got.SpotLight)
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, "clearcolor", l.Name)

	l, err = ParseLayout(" Compact ")
	require.NoError(t, err)
	assert.Equal(t, LayoutCompact.Fields, l.Fields)

	_, err = ParseLayout("v2")
	assert.Error(t, err)
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "camera.front.z", FieldFrontZ.String())
	assert.Equal(t, "Field(99)", Field(99).String())
}
