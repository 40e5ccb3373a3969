package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	plan := cfg.Plan()
	if plan.CountryCode != "7" || plan.TrunkPrefix != '8' || plan.MobileLead != '9' {
		t.Fatalf("unexpected default plan: %+v", plan)
	}

	tokens := cfg.StartTokens()
	for _, want := range []string{"form", "request", "application"} {
		if _, ok := tokens[want]; !ok {
			t.Fatalf("default start tokens missing %q", want)
		}
	}

	if cfg.Database.Host != "" {
		t.Fatalf("database host must default to empty, got %q", cfg.Database.Host)
	}
}

func TestLoadConfigCustomPlan(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
form:
  home_country_code: "380"
  trunk_prefix: "0"
  mobile_lead: "6"
  start_tokens: ["Form", " zayavka "]
notify:
  operator_chat_id: -100200300
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	plan := cfg.Plan()
	if plan.CountryCode != "380" || plan.TrunkPrefix != '0' || plan.MobileLead != '6' {
		t.Fatalf("unexpected plan: %+v", plan)
	}

	tokens := cfg.StartTokens()
	if len(tokens) != 2 {
		t.Fatalf("expected 2 start tokens, got %d", len(tokens))
	}
	if _, ok := tokens["form"]; !ok {
		t.Fatal("start tokens must be lowercased")
	}
	if _, ok := tokens["zayavka"]; !ok {
		t.Fatal("start tokens must be trimmed")
	}

	if cfg.Notify.OperatorChatID != -100200300 {
		t.Fatalf("operator chat id = %d", cfg.Notify.OperatorChatID)
	}
}

func TestLoadConfigRejectsBadPlan(t *testing.T) {
	for name, body := range map[string]string{
		"letters in code": `
telegram:
  token: "t"
form:
  home_country_code: "abc"
`,
		"long trunk prefix": `
telegram:
  token: "t"
form:
  trunk_prefix: "88"
`,
	} {
		path := writeConfig(t, body)
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	path := writeConfig(t, "telegram:\n  run_mode: longpoll\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for missing token")
	}
}
