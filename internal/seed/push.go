package seed

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/config"
)

// GeneratePushes lets every department and company account notify students about the resources it
// supplies. Each outbound batch shares one timestamp between the later of the pusher's and the
// earliest receiver's registration and the target resource's deadline. With PushProbability a batch
// targets a resource the pusher does not supply instead.
//
// A department contact supplies every resource of its department code, so the two programs of a
// split department push each other's resources.
//
// No resource is pushed more than MaxPushesPerResource times. The result is ordered by PushedAt and
// numbered from 1 in that order.
func GeneratePushes(src *Source, cfg config.GeneratorConfig, pushers, students []models.User, departments []models.Department, resources []models.Resource, now time.Time) []models.PushRecord {
	if len(students) == 0 || len(resources) == 0 {
		return nil
	}
	owners := newOwnerIndex(departments)

	counts := make(map[uuid.UUID]int, len(resources))
	var records []models.PushRecord
	for _, pusher := range pushers {
		own, foreign := owners.partition(resources, pusher.ID)
		for _, r := range own {
			if counts[r.ID] >= cfg.MaxPushesPerResource {
				continue
			}
			n := src.IntRange(1, min(len(students), cfg.MaxPushesPerResource-counts[r.ID]))
			receivers := sample(src, students, n)

			target := r
			if src.Chance(cfg.PushProbability) && len(foreign) > 0 {
				target = pick(src, foreign)
			}

			at := pushTime(src, pusher, receivers, target, now)
			for _, recv := range receivers {
				if counts[target.ID] >= cfg.MaxPushesPerResource {
					break
				}
				records = append(records, models.PushRecord{
					PusherID:   pusher.ID,
					ReceiverID: recv.ID,
					ResourceID: target.ID,
					PushedAt:   at,
				})
				counts[target.ID]++
			}
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PushedAt.Before(records[j].PushedAt)
	})
	for i := range records {
		records[i].ID = i + 1
	}
	return records
}

// ownerIndex maps department IDs and department contacts to department codes.
type ownerIndex struct {
	codeByDepartment map[string]string
	codeByContact    map[uuid.UUID]string
}

func newOwnerIndex(departments []models.Department) ownerIndex {
	idx := ownerIndex{
		codeByDepartment: make(map[string]string, len(departments)),
		codeByContact:    make(map[uuid.UUID]string, len(departments)),
	}
	for _, d := range departments {
		idx.codeByDepartment[d.ID] = d.Code
		idx.codeByContact[d.ContactUserID] = d.Code
	}
	return idx
}

// owns reports whether the account speaks for the supplier of r.
func (idx ownerIndex) owns(contact uuid.UUID, r models.Resource) bool {
	switch s := r.Supplier.(type) {
	case models.DepartmentSupplier:
		code, ok := idx.codeByContact[contact]
		return ok && code == idx.codeByDepartment[s.DepartmentID]
	case models.CompanySupplier:
		return s.Contact == contact
	}
	return false
}

func (idx ownerIndex) partition(resources []models.Resource, contact uuid.UUID) (own, foreign []models.Resource) {
	for _, r := range resources {
		if idx.owns(contact, r) {
			own = append(own, r)
		} else {
			foreign = append(foreign, r)
		}
	}
	return own, foreign
}

// pushTime draws the shared timestamp of one batch. An undated resource is bounded by now, and a
// bound earlier than the start collapses to the start.
func pushTime(src *Source, pusher models.User, receivers []models.User, target models.Resource, now time.Time) time.Time {
	start := pusher.RegisteredAt
	earliest := receivers[0].RegisteredAt
	for _, r := range receivers[1:] {
		if r.RegisteredAt.Before(earliest) {
			earliest = r.RegisteredAt
		}
	}
	if earliest.After(start) {
		start = earliest
	}

	end := target.Deadline
	if end.IsZero() {
		end = now
	}
	if !end.After(start) {
		return start.Truncate(time.Second)
	}
	return src.TimeBetween(start, end)
}
