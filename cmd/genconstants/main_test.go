package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/fang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	// A nil slice makes cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return out.String(), err
}

func TestRoot(t *testing.T) {
	zeros := func(n int) string { return strings.Repeat(", 0", n) }

	for _, tt := range []struct {
		name string
		args []string
		want string
	}{
		{"one", []string{"1", "0", "0", "0", "0"}, "[1" + zeros(31) + "]\n"},
		{"montgomery A", []string{"486662", "0", "0", "0", "0"}, "[6, 109, 7" + zeros(29) + "]\n"},
		{
			"p is zero",
			[]string{"2251799813685229", "2251799813685247", "2251799813685247", "2251799813685247", "2251799813685247"},
			"[0" + zeros(31) + "]\n",
		},
		{
			"p minus one",
			[]string{"2251799813685228", "2251799813685247", "2251799813685247", "2251799813685247", "2251799813685247"},
			"[236" + strings.Repeat(", 255", 30) + ", 127]\n",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		args []string
		err  string
	}{
		{"no limbs", nil, "missing limb l0, all five limbs l0..l4 are required"},
		{"missing limb", []string{"1", "2"}, "missing limb l2, all five limbs l0..l4 are required"},
		{"not a number", []string{"1", "two", "0", "0", "0"}, `invalid limb l1: strconv.ParseUint: parsing "two": invalid syntax`},
		{"overflow", []string{"0", "0", "0", "0", "18446744073709551616"}, `invalid limb l4: strconv.ParseUint: parsing "18446744073709551616": value out of range`},
		{"too many", []string{"0", "0", "0", "0", "0", "0"}, "accepts at most 5 arg(s), received 6"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			assert.EqualError(t, err, tt.err)
			assert.Empty(t, out)
			assert.True(t, isUsageError(err))
		})
	}
}

const limbSource = `pub(crate) const MONTGOMERY_A: FieldElement51 = FieldElement51([
    486662,
    0,
    0,
    0,
    0,
]);
`

const byteSource = `pub(crate) const MONTGOMERY_A: Engine25519 = Engine25519([
    6, 109, 7, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
]);
`

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "constants.rs")
	outFile := filepath.Join(dir, "constants_gen.rs")
	require.NoError(t, os.WriteFile(in, []byte(limbSource), 0644))

	out, err := execute(t, "", "convert", "--log-level", "ERROR", "-i", in, "-o", outFile)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, byteSource, string(b))
}

func TestConvertCommandStdio(t *testing.T) {
	out, err := execute(t, limbSource, "convert", "--log-level", "ERROR", "-i", "-", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, byteSource, out)
}

func TestConvertCommandConfig(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "limbs.rs")
	outFile := filepath.Join(dir, "bytes.rs")
	cfgFile := filepath.Join(dir, "genconstants.toml")
	require.NoError(t, os.WriteFile(in, []byte(strings.ReplaceAll(limbSource, "FieldElement51", "Fe51")), 0644))
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
[Convert]
  Input = "`+in+`"
  Output = "`+outFile+`"
  SourceType = "Fe51"

[Logging]
  Disable = true
`), 0644))

	_, err := execute(t, "", "convert", "-c", cfgFile)
	require.NoError(t, err)

	b, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, byteSource, string(b))

	// Flags override the config file.
	_, err = execute(t, "", "convert", "-c", cfgFile, "--to", "Fe")
	require.NoError(t, err)

	b, err = os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, strings.ReplaceAll(byteSource, "Engine25519", "Fe"), string(b))
}

func TestConvertCommandFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "constants.rs")
	outFile := filepath.Join(dir, "constants_gen.rs")
	require.NoError(t, os.WriteFile(in, []byte("FieldElement51([1, 2, 3])\n"), 0644))

	_, err := execute(t, "", "convert", "--log-level", "ERROR", "-i", in, "-o", outFile)
	assert.EqualError(t, err, "convert: line 1: expected 5 limbs, got 3")

	_, err = os.Stat(outFile)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestConvertCommandErrors(t *testing.T) {
	_, err := execute(t, "", "convert", "-c", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to load config file: "))

	_, err = execute(t, "", "convert", "--from", "Engine25519")
	assert.EqualError(t, err, "config: Convert: SourceType and TargetType are the same")

	_, err = execute(t, "", "convert", "--log-level", "LOUD")
	assert.EqualError(t, err, "config: Logging: Level 'LOUD' is invalid")
}

func TestConstantsCommand(t *testing.T) {
	out, err := execute(t, "", "constants", "--type", "Fe")
	require.NoError(t, err)

	assert.Contains(t, out, "pub(crate) const MONTGOMERY_A: Fe =\n    Fe([6, 109, 7, 0,")
	assert.Contains(t, out, "pub const ED25519_BASEPOINT_POINT: EdwardsPoint = EdwardsPoint {\n")
}

func TestVerifyCommand(t *testing.T) {
	out, err := execute(t, "", "verify", "--log-level", "ERROR")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 8)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "ok   "), l)
	}
}

func TestUsageErrorHandler(t *testing.T) {
	for _, tt := range []struct {
		name        string
		args        []string
		err         string
		contains    []string
		notContains []string
	}{
		{
			"subcommand flag",
			[]string{"convert", "--bogus"},
			"unknown flag: --bogus",
			[]string{"unknown flag: --bogus.", "genconstants convert [flags]", "--input"},
			[]string{"<l0>", "for usage."},
		},
		{
			"root arguments",
			[]string{"1", "2"},
			"missing limb l2, all five limbs l0..l4 are required",
			[]string{"missing limb l2", "genconstants <l0> <l1> <l2> <l3> <l4>"},
			[]string{"for usage."},
		},
		{
			"data error",
			[]string{"convert"},
			"convert: line 1: expected 5 limbs, got 3",
			[]string{"expected 5 limbs, got 3.", "--help", "for usage."},
			[]string{"Usage:"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			usageErrorHandler(newRootCommand(), tt.args)(&buf, fang.Styles{}, errors.New(tt.err))

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestRunWithFang(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.NoError(t, runWithFang(context.Background(), cmd, []string{"1", "0", "0", "0", "0"}))
	assert.Equal(t, "[1"+strings.Repeat(", 0", 31)+"]\n", out.String())

	out.Reset()
	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	assert.Error(t, runWithFang(context.Background(), cmd, []string{"convert", "--bogus"}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "--bogus")
}

func TestIsUsageError(t *testing.T) {
	assert.True(t, isUsageError(errors.New(`unknown flag: --bogus`)))
	assert.False(t, isUsageError(errors.New("convert: line 1: expected 5 limbs, got 3")))
}
