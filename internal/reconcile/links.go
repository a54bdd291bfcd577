package reconcile

// Link is the desired form of a parent-to-child link row (question-tag, question-image, course-tag).
type Link struct {
	ID      int64
	ChildID int64
}

func (l Link) GetID() int64 { return l.ID }

// LinkKey is the natural key of a link: the referenced child.
func LinkKey(l Link) int64 { return l.ChildID }

// DesiredLinks turns the client's list of child ids into desired link records. A child that is
// already linked reuses the id of its first persisted link, so the row is updated in place
// rather than replaced.
func DesiredLinks[E Identifiable](childIDs []int64, persisted []E, childOf func(E) int64) []Link {
	existing := make(map[int64]int64, len(persisted))
	for _, e := range persisted {
		child := childOf(e)
		if _, ok := existing[child]; !ok {
			existing[child] = e.GetID()
		}
	}

	links := make([]Link, 0, len(childIDs))
	for _, child := range childIDs {
		links = append(links, Link{ID: existing[child], ChildID: child})
	}
	return links
}
