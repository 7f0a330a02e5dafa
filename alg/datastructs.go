package alg

// Stack and Queue back the parser configuration. Both index from the
// "active" end: Index(0) is the stack top / queue front.

type StackArray struct {
	Array []int
}

func NewStackArray(size int) *StackArray {
	return &StackArray{make([]int, 0, size)}
}

func (s *StackArray) Clear() {
	s.Array = s.Array[0:0]
}

func (s *StackArray) Push(val int) {
	s.Array = append(s.Array, val)
}

func (s *StackArray) Pop() (int, bool) {
	if s.Size() == 0 {
		return 0, false
	}
	retval := s.Array[len(s.Array)-1]
	s.Array = s.Array[:len(s.Array)-1]
	return retval, true
}

func (s *StackArray) Index(index int) (int, bool) {
	if index >= s.Size() {
		return 0, false
	}
	return s.Array[len(s.Array)-1-index], true
}

func (s *StackArray) Peek() (int, bool) {
	return s.Index(0)
}

func (s *StackArray) Size() int {
	return len(s.Array)
}

func (s *StackArray) Copy() *StackArray {
	newArray := make([]int, len(s.Array), cap(s.Array))
	copy(newArray, s.Array)
	return &StackArray{newArray}
}

type QueueSlice struct {
	slice []int
}

func NewQueueSlice(size int) *QueueSlice {
	return &QueueSlice{make([]int, 0, size)}
}

func (q *QueueSlice) Clear() {
	q.slice = q.slice[0:0]
}

func (q *QueueSlice) Enqueue(val int) {
	q.slice = append(q.slice, val)
}

func (q *QueueSlice) Dequeue() (int, bool) {
	if q.Size() == 0 {
		return 0, false
	}
	retval := q.slice[0]
	q.slice = q.slice[1:]
	return retval, true
}

// Pop is mapped to the front of the queue, so it acts like a dequeue
func (q *QueueSlice) Pop() (int, bool) {
	return q.Dequeue()
}

func (q *QueueSlice) Index(index int) (int, bool) {
	if index >= q.Size() {
		return 0, false
	}
	return q.slice[index], true
}

func (q *QueueSlice) Peek() (int, bool) {
	return q.Index(0)
}

func (q *QueueSlice) Size() int {
	return len(q.slice)
}

func (q *QueueSlice) Copy() *QueueSlice {
	newSlice := make([]int, len(q.slice), cap(q.slice))
	copy(newSlice, q.slice)
	return &QueueSlice{newSlice}
}
