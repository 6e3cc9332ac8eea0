package render

// Session accumulates the output of successive render stages for a single page.
//
// The first call to Stage renders its template. Every later stage uses the current output as
// the template, so a layout can be wrapped around a fragment and then filled in:
//
//	var s render.Session
//	s.Stage(page, render.Params{"content": post})
//	s.Then(record)
//
// A Session must not be reused for another page.
type Session struct {
	out    string
	staged bool
}

// Stage renders the session against params. tpl is only used by the first stage.
func (s *Session) Stage(tpl string, params Params) {
	if s.staged {
		tpl = s.out
	}
	s.staged = true
	s.out = Render(tpl, params)
}

// Then renders the current output against params.
func (s *Session) Then(params Params) {
	s.Stage(s.out, params)
}

// String returns the current output.
func (s *Session) String() string {
	return s.out
}
