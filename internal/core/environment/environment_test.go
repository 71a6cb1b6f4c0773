package environment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConnections_NotExists(t *testing.T) {
	cf, err := LoadConnections(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConnections() error = %v", err)
	}
	if len(cf.Connections) != 0 {
		t.Fatalf("expected no connections, got %d", len(cf.Connections))
	}
}

func TestLoadConnections_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connections.yaml")
	if err := os.WriteFile(path, []byte("connections: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConnections(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConnections_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connections.yaml")
	content := `connections:
  - name: local
    url: http://localhost:6333
  - name: cloud
    url: https://xyz.cloud.example.com:6333
    api_key: plain-key
    variables:
      collection: products
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cf, err := LoadConnections(path)
	if err != nil {
		t.Fatalf("LoadConnections() error = %v", err)
	}
	if got := strings.Join(cf.Names(), ","); got != "local,cloud" {
		t.Fatalf("Names() = %q, want local,cloud", got)
	}

	c, ok := cf.Find("cloud")
	if !ok {
		t.Fatal("expected cloud connection")
	}
	if c.Variables["collection"] != "products" {
		t.Fatalf("unexpected variables %v", c.Variables)
	}
	key, err := c.Key("")
	if err != nil || key != "plain-key" {
		t.Fatalf("Key() = %q, %v", key, err)
	}

	if _, ok := cf.Find("missing"); ok {
		t.Fatal("did not expect missing connection")
	}
}

func TestKeyringSealOpen(t *testing.T) {
	kr := NewKeyring("hunter2")

	sealed, err := kr.Seal("my-api-key")
	if err != nil {
		t.Fatal(err)
	}
	if !IsSealed(sealed) {
		t.Fatalf("expected sealed prefix, got %q", sealed)
	}
	if strings.Contains(sealed, "my-api-key") {
		t.Fatal("sealed value leaks plaintext")
	}

	again, _ := kr.Seal("my-api-key")
	if again == sealed {
		t.Fatal("expected distinct nonces per seal")
	}

	opened, err := kr.Open(sealed)
	if err != nil {
		t.Fatal(err)
	}
	if opened != "my-api-key" {
		t.Fatalf("Open() = %q", opened)
	}

	if _, err := NewKeyring("wrong").Open(sealed); err == nil {
		t.Fatal("expected error with wrong passphrase")
	}
	if _, err := kr.Open(sealedPrefix + "AAAA"); err == nil {
		t.Fatal("expected error for truncated ciphertext")
	}
}

func TestKeyringOpenPlaintext(t *testing.T) {
	got, err := NewKeyring("x").Open("not-sealed")
	if err != nil || got != "not-sealed" {
		t.Fatalf("Open() = %q, %v", got, err)
	}
}

func TestConnectionKeySealed(t *testing.T) {
	sealed, err := NewKeyring("pass").Seal("k-123")
	if err != nil {
		t.Fatal(err)
	}
	c := Connection{Name: "cloud", APIKey: sealed}

	if _, err := c.Key(""); err == nil {
		t.Fatal("expected error without passphrase")
	}
	key, err := c.Key("pass")
	if err != nil || key != "k-123" {
		t.Fatalf("Key() = %q, %v", key, err)
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("QCONSOLE_TEST_LIMIT", "7")
	vars := map[string]string{"collection": "products"}

	got := Resolve("POST /collections/{{collection}}/points/scroll\n{\"limit\": {{QCONSOLE_TEST_LIMIT}}, \"x\": \"{{unknown}}\"}", vars)
	want := "POST /collections/products/points/scroll\n{\"limit\": 7, \"x\": \"{{unknown}}\"}"
	if got != want {
		t.Fatalf("Resolve() =\n%s\nwant\n%s", got, want)
	}
}

func TestResolvePrefersConnectionVariables(t *testing.T) {
	t.Setenv("collection", "from-env")
	got := Resolve("GET /collections/{{collection}}", map[string]string{"collection": "from-vars"})
	if got != "GET /collections/from-vars" {
		t.Fatalf("Resolve() = %q", got)
	}
}
