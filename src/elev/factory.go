package elev

// Factory hands out elevators with increasing IDs starting at 0. IDs are never reused,
// even when construction of an elevator fails after the ID was taken.
type Factory struct {
	cfg    Config
	nextID int
}

func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

func (f *Factory) Build() (*Elevator, error) {
	id := f.nextID
	f.nextID++
	return NewElevator(id, f.cfg)
}

// NextID is the ID the next Build call will assign.
func (f *Factory) NextID() int {
	return f.nextID
}
