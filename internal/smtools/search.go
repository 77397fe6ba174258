package smtools

// Matches lazily produces the canonical paths found by a name search.
// Like Walker it is single use: once Next returns false it stays false.
type Matches struct {
	walker *Walker
	name   string
	want   Kind

	// single holds the one candidate of a non-recursive lookup.
	single  string
	pending bool

	cur string
	err error
}

// FilesWithName searches for regular files called name.
//
// With recursive set, every file below dir whose base name equals name
// exactly is produced. Without it, name itself is treated as a path relative
// to the working directory and produced if it is an existing file; dir is
// not consulted in that mode.
func (t *Toolkit) FilesWithName(name, dir string, recursive bool) (*Matches, error) {
	return t.withName(name, dir, recursive, KindFile)
}

// DirsWithName is FilesWithName for directories.
func (t *Toolkit) DirsWithName(name, dir string, recursive bool) (*Matches, error) {
	return t.withName(name, dir, recursive, KindDirectory)
}

func (t *Toolkit) withName(name, dir string, recursive bool, want Kind) (*Matches, error) {
	if !recursive {
		p, err := t.Resolve(name)
		if err != nil {
			return nil, err
		}
		m := &Matches{}
		if p.Kind() == want {
			m.single = p.String()
			m.pending = true
		}
		return m, nil
	}

	w, err := t.Walk(dir, true)
	if err != nil {
		return nil, err
	}
	return &Matches{walker: w, name: name, want: want}, nil
}

// Next advances to the next match.
func (m *Matches) Next() bool {
	if m.pending {
		m.pending = false
		m.cur = m.single
		return true
	}
	if m.walker == nil {
		m.cur = ""
		return false
	}

	for m.walker.Next() {
		e := m.walker.Entry()
		if e.Kind() == m.want && e.Name() == m.name {
			m.cur = e.Path
			return true
		}
	}

	m.err = m.walker.Err()
	m.walker = nil
	m.cur = ""
	return false
}

// Path returns the match produced by the last successful call to Next.
func (m *Matches) Path() string {
	return m.cur
}

// Err returns the error that stopped the search, or nil.
func (m *Matches) Err() error {
	return m.err
}

// Collect drains the remaining matches into a slice.
func (m *Matches) Collect() ([]string, error) {
	var paths []string
	for m.Next() {
		paths = append(paths, m.Path())
	}
	return paths, m.Err()
}
