package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{dsn: "sqlite://chronicle.db", want: "chronicle.db"},
		{dsn: "sqlite:///var/lib/chronicle/data.db", want: "/var/lib/chronicle/data.db"},
		{dsn: "sqlite://:memory:", want: ":memory:"},
		{dsn: "sqlite://", wantErr: true},
		{dsn: "postgres://localhost/chronicle", wantErr: true},
		{dsn: "chronicle.db", wantErr: true},
	}

	for _, tc := range tests {
		got, err := parseDSN(tc.dsn)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseDSN(%q): expected error, got %q", tc.dsn, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDSN(%q): %v", tc.dsn, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseDSN(%q) = %q, want %q", tc.dsn, got, tc.want)
		}
	}
}
