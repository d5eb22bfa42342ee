package task

// Fields is the set of canonical (camelCase) field keys a service
// payload actually carried. Merging consults it to tell an omitted
// field from one that decoded to its zero value: a partial echo that
// leaves out completed must not read as completed=false.
type Fields map[string]bool

// Has reports whether the payload carried the named field.
func (f Fields) Has(name string) bool { return f[name] }
