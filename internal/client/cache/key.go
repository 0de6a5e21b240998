package cache

import "fmt"

// Key identifies what an entry holds: a whole collection or one item of it.
// Keys are compared by value, so two keys built separately for the same
// resource (and id) address the same entry.
type Key struct {
	Resource string
	ID       int64
	Scoped   bool
}

// Collection is the key of every item of resource.
func Collection(resource string) Key {
	return Key{Resource: resource}
}

// Item is the key of the single item id of resource.
func Item(resource string, id int64) Key {
	return Key{Resource: resource, ID: id, Scoped: true}
}

func (k Key) String() string {
	if k.Scoped {
		return fmt.Sprintf("%s/%d", k.Resource, k.ID)
	}
	return k.Resource
}
