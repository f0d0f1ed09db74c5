package weekday

type Weekday uint8

const (
	Monday  Weekday = iota + 1 // name=mon, id=10
	Tuesday                    // name="tue", id=20
	_
	Sunday // id=70
)
