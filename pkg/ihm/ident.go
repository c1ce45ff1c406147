package ihm

// Ident carries the row identifier an object was read with. Objects built in
// code usually leave it empty; writers assign their own identifiers.
type Ident struct {
	id string
}

// ID returns the row identifier.
func (i *Ident) ID() string { return i.id }

// SetID sets the row identifier.
func (i *Ident) SetID(id string) { i.id = id }
