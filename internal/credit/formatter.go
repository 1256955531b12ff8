package credit

// Formatter receives a credit line piece by piece. Credit.Format calls
// Begin, then the Add methods for the main line, then for each rendered
// level of sources BeginSources/BeginSource/.../EndSource/EndSources, and
// finally End.
type Formatter interface {
	Begin()
	End()

	// BeginSources starts the list of sources, introduced by label
	BeginSources(label string)
	EndSources()

	// BeginSource starts one entry of the source list
	BeginSource()
	EndSource()

	AddTitle(text, url string)
	AddAttrib(text, url string)
	AddLicense(text, url string)

	// AddText adds literal text from the credit line template
	AddText(text string)
}

// BaseFormatter implements every Formatter method as a no-op. Embed it to
// override only the methods a format cares about.
type BaseFormatter struct{}

func (BaseFormatter) Begin()                      {}
func (BaseFormatter) End()                        {}
func (BaseFormatter) BeginSources(label string)   {}
func (BaseFormatter) EndSources()                 {}
func (BaseFormatter) BeginSource()                {}
func (BaseFormatter) EndSource()                  {}
func (BaseFormatter) AddTitle(text, url string)   {}
func (BaseFormatter) AddAttrib(text, url string)  {}
func (BaseFormatter) AddLicense(text, url string) {}
func (BaseFormatter) AddText(text string)         {}

var _ Formatter = BaseFormatter{}
