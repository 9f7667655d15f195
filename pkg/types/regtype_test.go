package types

import "testing"

func Test_RegType_String(t *testing.T) {
	tests := []struct {
		typ  RegType
		want string
	}{
		{REG_NONE, "REG_NONE"},
		{REG_SZ, "REG_SZ"},
		{REG_BINARY, "REG_BINARY"},
		{REG_DWORD, "REG_DWORD"},
		{REG_MULTI_SZ, "REG_MULTI_SZ"},
		{REG_QWORD, "REG_QWORD"},
		{RegType(42), "UNKNOWN_TYPE_42"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_ParseRegType(t *testing.T) {
	tests := []struct {
		in      string
		want    RegType
		wantErr bool
	}{
		{"REG_SZ", REG_SZ, false},
		{"reg_sz", REG_SZ, false},
		{"string", REG_SZ, false},
		{"DWORD", REG_DWORD, false},
		{" REG_QWORD ", REG_QWORD, false},
		{"MULTI_SZ", REG_MULTI_SZ, false},
		{"REG_BINARY", REG_BINARY, false},
		{"REG_NONE", REG_NONE, false},
		{"REG_BOGUS", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRegType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRegType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseRegType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func Test_ParseRoot(t *testing.T) {
	tests := []struct {
		in      string
		want    Root
		wantErr bool
	}{
		{"HKEY_CURRENT_USER", CurrentUser, false},
		{"hklm", LocalMachine, false},
		{"HKCR", ClassesRoot, false},
		{"HKU", Users, false},
		{"HKEY_CURRENT_CONFIG", CurrentConfig, false},
		{"HKEY_DYN_DATA", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRoot(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRoot(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseRoot(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
