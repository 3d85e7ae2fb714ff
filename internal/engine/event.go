package engine

// Subscription identifies a listener so it can be removed again.
type Subscription uint64

// EventWithArg is a multi-cast event with one argument. Listeners are
// invoked synchronously in subscription order.
type EventWithArg[T any] struct {
	nextID    Subscription
	listeners []listener[T]
}

type listener[T any] struct {
	id Subscription
	fn func(T)
}

// AddListener registers callback and returns a handle for RemoveListener.
// A nil callback is ignored and yields the zero handle.
func (e *EventWithArg[T]) AddListener(callback func(T)) Subscription {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: callback})
	return e.nextID
}

// RemoveListener drops the listener with the given handle. Unknown handles
// are ignored.
func (e *EventWithArg[T]) RemoveListener(id Subscription) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	// Listeners may unsubscribe while being invoked.
	snapshot := append([]listener[T](nil), e.listeners...)
	for _, l := range snapshot {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

// Event is an EventWithArg without a payload.
type Event struct {
	inner EventWithArg[struct{}]
}

func (e *Event) AddListener(callback func()) Subscription {
	if callback == nil {
		return 0
	}
	return e.inner.AddListener(func(struct{}) { callback() })
}

func (e *Event) RemoveListener(id Subscription) {
	e.inner.RemoveListener(id)
}

func (e *Event) Invoke() {
	e.inner.Invoke(struct{}{})
}

func (e *Event) GetListenerCount() int {
	return e.inner.GetListenerCount()
}
