package version

import "testing"

func TestGet(t *testing.T) {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	defer func() { Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime }()

	Version = "v1.2.3"
	GitCommit = "abcdef0123456"
	BuildTime = "2026-01-02T03:04:05Z"

	info := Get()
	if info.Version != "v1.2.3" {
		t.Errorf("expected v1.2.3, got %q", info.Version)
	}
	if info.GitCommit != "abcdef0" {
		t.Errorf("expected commit shortened to 7 chars, got %q", info.GitCommit)
	}
	if info.BuildTime != "2026-01-02T03:04:05Z" {
		t.Errorf("expected ldflags build time kept, got %q", info.BuildTime)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "v1", GitCommit: "abc1234"}, "v1-abc1234"},
		{Info{Version: "v1", GitCommit: "abc1234", Dirty: true}, "v1-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("%+v: got %q, want %q", tt.info, got, tt.want)
		}
	}
}
