package htmlcleaner

import "testing"

func TestDropAttr(t *testing.T) {
	all := Options{RemoveComments: true, RemoveDataAttrs: true, RemoveClasses: true}
	cases := []struct {
		name, val string
		opts      Options
		want      bool
	}{
		{"style", "color:red", Options{}, true},
		{"STYLE", "color:red", Options{}, true},
		{"bgcolor", "#fff", Options{}, true},
		{"cellspacing", "0", Options{}, true},
		{"onclick", "x()", Options{}, true},
		{"onMouseOver", "y()", Options{}, true},
		{"on", "z", Options{}, false},      // bare "on" is not an event handler
		{"on-load", "z", Options{}, false}, // hyphen breaks the letter run
		{"once", "", Options{}, true},      // pattern is purely syntactic
		{"data-id", "5", Options{}, false},
		{"data-id", "5", all, true},
		{"DATA-ID", "5", all, true},
		{"class", "foo", Options{}, false},
		{"class", "foo", all, true},
		{"class", "", Options{}, true},
		{"class", "   ", Options{}, true},
		{"href", "/x", all, false},
		{"id", "main", all, false},
		{"colspan", "2", all, false},
	}
	for _, c := range cases {
		if got := dropAttr(c.name, c.val, c.opts); got != c.want {
			t.Errorf("dropAttr(%q, %q, %+v) = %v, want %v", c.name, c.val, c.opts, got, c.want)
		}
	}
}

func TestPercentOf(t *testing.T) {
	cases := []struct{ processed, total, want int }{
		{100, 250, 40},
		{200, 250, 80},
		{250, 250, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 1000, 0},
	}
	for _, c := range cases {
		if got := percentOf(c.processed, c.total); got != c.want {
			t.Errorf("percentOf(%d, %d) = %d, want %d", c.processed, c.total, got, c.want)
		}
	}
}
