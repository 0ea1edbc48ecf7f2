package sdk

// State is the key/value storage a contract persists into. On chain this is
// backed by big maps; locally it is an in-memory map or a BadgerDB bucket.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// MemState is a plain in-memory State, used by contract unit tests and as the
// default sandbox backend.
type MemState struct {
	db map[string]string
}

func NewMemState() *MemState {
	return &MemState{db: make(map[string]string)}
}

func (m *MemState) Set(key, value string) {
	m.db[key] = value
}

func (m *MemState) Get(key string) *string {
	val, ok := m.db[key]
	if !ok {
		return nil
	}
	return &val
}

func (m *MemState) Delete(key string) {
	delete(m.db, key)
}

// Len reports how many keys are stored, handy for storage assertions.
func (m *MemState) Len() int {
	return len(m.db)
}

// Staged buffers writes on top of a base State so a whole transaction can be
// committed or discarded as one unit. A nil entry in writes marks a deletion.
type Staged struct {
	base   State
	writes map[string]*string
}

func NewStaged(base State) *Staged {
	return &Staged{base: base, writes: make(map[string]*string)}
}

func (s *Staged) Set(key, value string) {
	v := value
	s.writes[key] = &v
}

func (s *Staged) Get(key string) *string {
	if v, ok := s.writes[key]; ok {
		if v == nil {
			return nil
		}
		val := *v
		return &val
	}
	return s.base.Get(key)
}

func (s *Staged) Delete(key string) {
	s.writes[key] = nil
}

// Commit applies the buffered writes to the base state and resets the buffer.
func (s *Staged) Commit() {
	for key, val := range s.writes {
		if val == nil {
			s.base.Delete(key)
		} else {
			s.base.Set(key, *val)
		}
	}
	s.writes = make(map[string]*string)
}

// Discard drops every buffered write, leaving the base state untouched.
func (s *Staged) Discard() {
	s.writes = make(map[string]*string)
}

// Prefixed namespaces a shared State so each contract sees only its own keys.
type Prefixed struct {
	base   State
	prefix string
}

func NewPrefixed(base State, prefix string) *Prefixed {
	return &Prefixed{base: base, prefix: prefix}
}

func (p *Prefixed) Set(key, value string) {
	p.base.Set(p.prefix+key, value)
}

func (p *Prefixed) Get(key string) *string {
	return p.base.Get(p.prefix + key)
}

func (p *Prefixed) Delete(key string) {
	p.base.Delete(p.prefix + key)
}
