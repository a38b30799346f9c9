package config

import "testing"

func TestMongoDBFromURI(t *testing.T) {
	cases := map[string]string{
		"mongodb://localhost:27017/portfolio":       "portfolio",
		"mongodb://localhost:27017/":                "",
		"mongodb+srv://u:p@cluster.example/site/x": "site",
	}
	for uri, want := range cases {
		if got := mongoDBFromURI(uri); got != want {
			t.Fatalf("mongoDBFromURI(%q) = %q, want %q", uri, got, want)
		}
	}
}

func TestLoadSQLiteBackend(t *testing.T) {
	t.Setenv("CONTENT_BACKEND", "sqlite")
	t.Setenv("TZ", "UTC")
	t.Setenv("FRONTEND_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SANITY_USE_CDN", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.ContentBackend != BackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", cfg.ContentBackend)
	}
	if len(cfg.FrontendOrigins) != 2 || cfg.FrontendOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.FrontendOrigins)
	}
	if !cfg.SanityUseCDN {
		t.Fatalf("expected SANITY_USE_CDN to parse as true")
	}
}

func TestLoadSanityRequiresProject(t *testing.T) {
	t.Setenv("CONTENT_BACKEND", "sanity")
	t.Setenv("SANITY_PROJECT_ID", "")
	t.Setenv("TZ", "UTC")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without SANITY_PROJECT_ID")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CONTENT_BACKEND", "dynamo")
	t.Setenv("TZ", "UTC")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
