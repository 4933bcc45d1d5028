package util

import (
	"reflect"
	"testing"
)

func TestOpenCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		goos string
		want []string
	}{
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "out.xlsx"}},
		{"darwin", []string{"open", "out.xlsx"}},
		{"linux", []string{"xdg-open", "out.xlsx"}},
		{"freebsd", []string{"xdg-open", "out.xlsx"}},
	}
	for _, tc := range cases {
		if got := openCommand(tc.goos, "out.xlsx").Args; !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: args=%v, want %v", tc.goos, got, tc.want)
		}
	}
}
