package enhance

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
)

type fakeProvider struct {
	cfg *descriptor.Config
	err error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Enhance(context.Context, []descriptor.Command) (*descriptor.Config, error) {
	return f.cfg, f.err
}

var commands = []descriptor.Command{
	{Key: "build", Command: "webpack"},
	{Key: "test", Command: "jest"},
	{Key: "lint", Command: "eslint ."},
}

func baseConfig() descriptor.Config {
	return descriptor.Config{Groups: []descriptor.Group{{
		Name: "Available Scripts",
		Scripts: []descriptor.Descriptor{
			{Key: "build", Description: "webpack"},
			{Key: "test", Description: "Run the unit tests"},
			{Key: "lint", Description: "Run lint script"},
		},
	}}}
}

func TestApply_ProviderFailureKeepsBase(t *testing.T) {
	boom := errors.New("deadline exceeded")
	got, err := Apply(context.Background(), &fakeProvider{err: boom}, baseConfig(), commands)

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Apply() error = %v, want *ProviderError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("ProviderError does not wrap cause")
	}
	if diff := cmp.Diff(baseConfig(), got); diff != "" {
		t.Errorf("base changed (-want +got):\n%s", diff)
	}
}

func TestApply_EmptySuggestion(t *testing.T) {
	got, err := Apply(context.Background(), &fakeProvider{cfg: &descriptor.Config{}}, baseConfig(), commands)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if diff := cmp.Diff(baseConfig(), got); diff != "" {
		t.Errorf("base changed (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	suggested := descriptor.Config{Groups: []descriptor.Group{
		{Name: "🧪 Testing", Scripts: []descriptor.Descriptor{
			{Key: "test", Description: "Runs jest", Title: "Test", Emoji: "🧪"},
			{Key: "invented", Description: "Not a real script"},
		}},
		{Name: "📦 Build", Scripts: []descriptor.Descriptor{
			{Key: "build", Description: "Bundle the app", Title: "Build", Emoji: "not-an-emoji"},
		}},
	}}

	got := Merge(baseConfig(), suggested, commands)
	want := descriptor.Config{Groups: []descriptor.Group{
		{Name: "🧪 Testing", Scripts: []descriptor.Descriptor{
			{Key: "test", Description: "Run the unit tests", Title: "Test", Emoji: "🧪"},
		}},
		{Name: "📦 Build", Scripts: []descriptor.Descriptor{
			{Key: "build", Description: "Bundle the app", Title: "Build"},
		}},
		{Name: "Available Scripts", Scripts: []descriptor.Descriptor{
			{Key: "lint", Description: "Run lint script"},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"plain", `{"scriptGroups":[{"name":"A","scripts":[{"key":"x","description":"d"}]}]}`, false},
		{"fenced", "```json\n{\"scriptGroups\":[]}\n```", false},
		{"garbage", "sorry, I cannot help", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
