package util

//*******************************************
// flags
//*******************************************

type _FlagsData[T any] struct {
	flags    []T
	epochs   []uint32
	epoch    uint32
	default_ T
}

// Per-id search state that can be cleared in constant time.
//
// Every slot remembers the epoch it was last written in; Reset only advances
// the current epoch, stale slots are reinitialized lazily on Get.
type Flags[T any] struct {
	data *_FlagsData[T]
}

func NewFlags[T any](count int32, default_value T) Flags[T] {
	flags := make([]T, count)
	for i := 0; i < len(flags); i++ {
		flags[i] = default_value
	}
	return Flags[T]{
		data: &_FlagsData[T]{
			flags:    flags,
			epochs:   make([]uint32, count),
			epoch:    1,
			default_: default_value,
		},
	}
}

// Returns a pointer to the flag of id, valid until the next Reset.
func (self Flags[T]) Get(id int32) *T {
	d := self.data
	if d.epochs[id] != d.epoch {
		d.flags[id] = d.default_
		d.epochs[id] = d.epoch
	}
	return &d.flags[id]
}

// Returns true if the flag of id was written since the last Reset.
func (self Flags[T]) IsSet(id int32) bool {
	return self.data.epochs[id] == self.data.epoch
}

func (self Flags[T]) Length() int {
	return len(self.data.flags)
}

func (self Flags[T]) Reset() {
	d := self.data
	d.epoch += 1
	if d.epoch == 0 {
		// counter wrapped, fall back to a full clear
		for i := 0; i < len(d.flags); i++ {
			d.flags[i] = d.default_
			d.epochs[i] = 0
		}
		d.epoch = 1
	}
}
