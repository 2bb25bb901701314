package comps

//*******************************************
// graph io
//*******************************************

type IStoreable interface {
	_Store(path string) error
}

func Store(comp IStoreable, path string) error {
	return comp._Store(path)
}

type ILoadable[T any] interface {
	_New() T
	_Load(path string) error
}

func Load[T ILoadable[T]](path string) (T, error) {
	var comp T
	comp = comp._New()
	if err := comp._Load(path); err != nil {
		var empty T
		return empty, err
	}
	return comp, nil
}
