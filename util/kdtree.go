package util

//*******************************************
// kd-tree
//*******************************************

type _KDNode[T any] struct {
	point []float32
	value T
	left  *_KDNode[T]
	right *_KDNode[T]
}

// Point index for nearest neighbour lookups.
//
// Not balanced, insert points in random or spatially mixed order.
type KDTree[T any] struct {
	dims int
	root *_KDNode[T]
	size int
}

func NewKDTree[T any](dims int) KDTree[T] {
	return KDTree[T]{
		dims: dims,
	}
}

func (self *KDTree[T]) Insert(point []float32, value T) {
	p := make([]float32, self.dims)
	copy(p, point)
	node := &_KDNode[T]{point: p, value: value}
	self.size += 1
	if self.root == nil {
		self.root = node
		return
	}
	curr := self.root
	depth := 0
	for {
		axis := depth % self.dims
		if p[axis] < curr.point[axis] {
			if curr.left == nil {
				curr.left = node
				return
			}
			curr = curr.left
		} else {
			if curr.right == nil {
				curr.right = node
				return
			}
			curr = curr.right
		}
		depth += 1
	}
}

func (self *KDTree[T]) Size() int {
	return self.size
}

// Returns the value of the closest point within max_dist (euclidean in point space).
func (self *KDTree[T]) GetClosest(point []float32, max_dist float32) (T, bool) {
	var best T
	best_dist := max_dist * max_dist
	found := false
	var search func(node *_KDNode[T], depth int)
	search = func(node *_KDNode[T], depth int) {
		if node == nil {
			return
		}
		d := _SquaredDist(node.point, point)
		if d <= best_dist {
			best_dist = d
			best = node.value
			found = true
		}
		axis := depth % self.dims
		diff := point[axis] - node.point[axis]
		var near, far *_KDNode[T]
		if diff < 0 {
			near, far = node.left, node.right
		} else {
			near, far = node.right, node.left
		}
		search(near, depth+1)
		if diff*diff <= best_dist {
			search(far, depth+1)
		}
	}
	search(self.root, 0)
	return best, found
}

func _SquaredDist(a, b []float32) float32 {
	sum := float32(0)
	for i := 0; i < len(a); i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
