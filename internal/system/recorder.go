package system

// Write is one recorded setting write.
type Write struct {
	Name  Setting
	Value string
}

// Recorder is an in-memory System for tests. Reads return the written value
// unless StaleReads is set, which pins reads to the initial Values to
// exercise verification mismatches.
type Recorder struct {
	Serial     string
	SerialErr  error
	Admin      bool
	Values     map[Setting]string
	FailSet    map[Setting]error
	StaleReads bool

	Writes  []Write
	applied map[Setting]string
}

// NewRecorder returns an admin Recorder reporting the given serial.
func NewRecorder(serial string) *Recorder {
	return &Recorder{
		Serial: serial,
		Admin:  true,
		Values: map[Setting]string{},
	}
}

func (r *Recorder) SerialNumber() (string, error) {
	return r.Serial, r.SerialErr
}

func (r *Recorder) Setting(name Setting) (string, error) {
	if !r.StaleReads {
		if v, ok := r.applied[name]; ok {
			return v, nil
		}
	}
	return r.Values[name], nil
}

func (r *Recorder) SetSetting(name Setting, value string) error {
	if err := r.FailSet[name]; err != nil {
		return err
	}
	if r.applied == nil {
		r.applied = map[Setting]string{}
	}
	r.applied[name] = value
	r.Writes = append(r.Writes, Write{Name: name, Value: value})
	return nil
}

func (r *Recorder) CurrentUserIsAdmin() bool {
	return r.Admin
}
