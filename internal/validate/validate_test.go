package validate

import (
	"strings"
	"testing"
)

func TestEnvDefaultsPass(t *testing.T) {
	for _, k := range []string{"STORE", "DATABASE_URL", "TLS_CERT", "TLS_KEY", "ADMIN_PASSWORD_HASH", "LOGIN_WINDOW", "ARGON2_MEMORY"} {
		t.Setenv(k, "")
	}
	if err := Env(); err != nil {
		t.Fatalf("Env() = %v", err)
	}
}

func TestEnvRejects(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown store", map[string]string{"STORE": "mongo"}, "STORE"},
		{"postgres without url", map[string]string{"STORE": "postgres", "DATABASE_URL": ""}, "DATABASE_URL"},
		{"half tls", map[string]string{"TLS_CERT": "cert.pem", "TLS_KEY": ""}, "TLS_CERT"},
		{"bad hash", map[string]string{"ADMIN_PASSWORD_HASH": "plain"}, "ADMIN_PASSWORD_HASH"},
		{"bad window", map[string]string{"LOGIN_WINDOW": "soon"}, "LOGIN_WINDOW"},
		{"weak argon", map[string]string{"ARGON2_MEMORY": "1024"}, "ARGON2_MEMORY"},
		{"zero rps", map[string]string{"RATE_LIMIT_RPS": "0"}, "RATE_LIMIT_RPS"},
		{"zero window max", map[string]string{"RATE_LIMIT_WINDOW_MAX": "0"}, "RATE_LIMIT_WINDOW_MAX"},
		{"bad prune clock", map[string]string{"AUDIT_PRUNE_AT": "25:99"}, "AUDIT_PRUNE_AT"},
		{"relative endpoint", map[string]string{"AWS_ENDPOINT": "r2.local"}, "AWS_ENDPOINT"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			err := Env()
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("Env() = %v, want mention of %s", err, c.want)
			}
		})
	}
}

func TestHardeningWarningsProduction(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@ntc.edu.vn")
	t.Setenv("ADMIN_PASSWORD", "plain")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("UPSTASH_REDIS_URL", "redis://default:x@host:6379")

	warns := strings.Join(HardeningWarnings("production"), "\n")
	for _, want := range []string{"ADMIN_PASSWORD", "redis://"} {
		if !strings.Contains(warns, want) {
			t.Errorf("warnings missing %q:\n%s", want, warns)
		}
	}
	if len(HardeningWarnings("development")) != 0 {
		t.Errorf("development should not warn with admin and redis configured")
	}
}
