package codesandbox

import (
	"crypto/sha256"
	"encoding/hex"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/sandboxer/pkg/deps"
	"github.com/matzehuels/sandboxer/pkg/errors"
)

func TestCompressToBase64_KnownVectors(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"single char", "a", "IZA="},
		{"ascii", "Hello, world", "BIUwNmD2A0AEDukBOYAmQ==="},
		{"surrogates", "surrogates: 😀🎉 and 日本語", "M4VwTmD2DmCGAuBTYAuABIXg3AAe4Hg3CR+2rAHYAmagp6aA05oHlRQA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compressToBase64(tt.in); got != tt.want {
				t.Errorf("compressToBase64(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Long repetitive input grows the dictionary through many code widths.
func TestCompressToBase64_Repetitive(t *testing.T) {
	in := strings.Repeat("import { Box } from '@fluentui/react-box';\n", 100)
	got := compressToBase64(in)

	const (
		wantLen    = 868
		wantPrefix = "JYWwDg9gTgLgBAbzgIQgDzgXzgMyhEOAcgAEcAbAVwFMA7GS"
		wantSHA256 = "9ebfbe27f15ff0520ba2c5a5899bd56b9d926af48bf0ce7efdc15a64ccf6ab97"
	)
	if len(got) != wantLen || !strings.HasPrefix(got, wantPrefix) {
		t.Fatalf("compressToBase64() = %d chars starting %.48q, want %d starting %q", len(got), got, wantLen, wantPrefix)
	}
	if sum := sha256.Sum256([]byte(got)); hex.EncodeToString(sum[:]) != wantSHA256 {
		t.Errorf("compressToBase64() sha256 = %x, want %s", sum, wantSHA256)
	}
}

func TestCompressRoundTrip(t *testing.T) {
	inputs := []string{
		"a",
		"Hello, world",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"import { useState } from 'react';\nimport Box from '@fluentui/react-box';\n",
		"unicode: héllo wörld — ✓ 日本語",
		"surrogates: 😀🎉",
		strings.Repeat("abcabcabd", 200),
	}

	for _, in := range inputs {
		enc := compressToBase64(in)
		if len(enc)%4 != 0 {
			t.Errorf("compressToBase64(%q) length %d not padded to 4", in, len(enc))
		}
		out, ok := decompressFromBase64(enc)
		if !ok {
			t.Errorf("decompressFromBase64 failed for %q", in)
			continue
		}
		if out != in {
			t.Errorf("round trip = %q, want %q", out, in)
		}
	}
}

func TestDecompressFromBase64_Invalid(t *testing.T) {
	if _, ok := decompressFromBase64(""); ok {
		t.Error("empty input should not decode")
	}
}

func TestParameters(t *testing.T) {
	files := Files{
		"example.tsx": {Content: "export const A = () => <div>a & b</div>;"},
		"index.html":  {Content: HTMLShell},
	}
	params, err := Parameters(files)
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(params, "+/=") {
		t.Errorf("Parameters() = %q, want URL-safe output", params)
	}

	got, err := DecodeParameters(params)
	if err != nil {
		t.Fatalf("DecodeParameters error: %v", err)
	}
	if !reflect.DeepEqual(got, files) {
		t.Errorf("DecodeParameters() = %v, want %v", got, files)
	}
}

func TestParameters_Empty(t *testing.T) {
	if _, err := Parameters(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Parameters(nil) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestDecodeParameters_Garbage(t *testing.T) {
	if _, err := DecodeParameters("   "); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("blank parameters error = %v", err)
	}
	if _, err := DecodeParameters("IZA"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("non-JSON payload error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestDefineURL(t *testing.T) {
	got := DefineURL("", "abc", "")
	want := "https://codesandbox.io/api/v1/sandboxes/define?parameters=abc&query=file%3D%2Fexample.tsx"
	if got != want {
		t.Errorf("DefineURL() = %q, want %q", got, want)
	}

	got = DefineURL("sandbox.example.com", "xyz", "/src/App.tsx")
	want = "https://sandbox.example.com/api/v1/sandboxes/define?parameters=xyz&query=file%3D%2Fsrc%2FApp.tsx"
	if got != want {
		t.Errorf("DefineURL() = %q, want %q", got, want)
	}
}

func TestParseDefineURL(t *testing.T) {
	raw := DefineURL("", "abc-_", "/example.tsx")
	params, file, err := ParseDefineURL(raw)
	if err != nil {
		t.Fatal(err)
	}
	if params != "abc-_" || file != "/example.tsx" {
		t.Errorf("ParseDefineURL() = %q, %q", params, file)
	}

	params, file, err = ParseDefineURL("  bare  ")
	if err != nil || params != "bare" || file != "" {
		t.Errorf("ParseDefineURL(bare) = %q, %q, %v", params, file, err)
	}

	if _, _, err := ParseDefineURL("https://codesandbox.io/s/abc"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("non-define URL error = %v", err)
	}
	if _, _, err := ParseDefineURL("ftp://codesandbox.io/api/v1/sandboxes/define"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ftp URL error = %v", err)
	}
}

func TestComponentName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My Example", "MyExample"},
		{"  Spaced\tOut \n Name ", "SpacedOutName"},
		{"Default", "Default"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ComponentName(tt.in); got != tt.want {
			t.Errorf("ComponentName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProject_Entry(t *testing.T) {
	p := Project{
		EntryTemplate: "import { STORY_NAME as Example } from './example';\n// render STORY_NAME\n",
		StoryName:     "My Example",
	}
	got := p.Entry()
	if strings.Contains(got, StoryNamePlaceholder) {
		t.Errorf("Entry() still contains placeholder: %q", got)
	}
	if strings.Count(got, "MyExample") != 2 {
		t.Errorf("Entry() = %q, want MyExample substituted twice", got)
	}
}

func TestProject_Files(t *testing.T) {
	p := Project{
		Example:       "import React from 'react';\n",
		EntryTemplate: "render(<STORY_NAME />)",
		StoryName:     "Default",
		Dependencies:  deps.Map{"react": "^17.0.0"},
	}
	files, err := p.Files()
	if err != nil {
		t.Fatal(err)
	}

	want := Files{
		"example.tsx":  {Content: "import React from 'react';\n"},
		"index.html":   {Content: `<div id="root"></div>`},
		"index.tsx":    {Content: "render(<Default />)"},
		"package.json": {Content: `{"dependencies":{"react":"^17.0.0"}}`},
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Files() = %#v, want %#v", files, want)
	}
	for name, f := range files {
		if f.IsBinary {
			t.Errorf("%s should not be binary", name)
		}
	}
}

func TestProject_URL(t *testing.T) {
	p := Project{
		Example:       "import Box from '@fluentui/react-box';\n",
		EntryTemplate: "STORY_NAME",
		StoryName:     "Box",
		Dependencies:  deps.Map{"@fluentui/react-box": "^9.0.0-beta"},
	}
	u, files, err := p.URL("", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "https://codesandbox.io/api/v1/sandboxes/define?parameters=") {
		t.Errorf("URL() = %q", u)
	}
	if !strings.HasSuffix(u, "&query=file%3D%2Fexample.tsx") {
		t.Errorf("URL() = %q, want default preview file", u)
	}

	params, _, err := ParseDefineURL(u)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeParameters(params)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded, files) {
		t.Errorf("decoded files = %v, want %v", decoded, files)
	}
}
