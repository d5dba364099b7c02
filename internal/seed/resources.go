package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/config"
	"github.com/group7/resmatch/internal/pkg/helpers"
)

const (
	minQuota       = 2
	maxQuota       = 10
	deadlineWindow = 550 // days either side of today

	scholarshipPoorChance = 0.2
	thresholdChance       = 0.5
)

var titleSuffix = map[models.ResourceType]string{
	models.ResourceScholarship: "獎學金",
	models.ResourceInternship:  "實習機會",
	models.ResourceLab:         "實驗室機會",
	models.ResourceCompetition: "競賽資源",
	models.ResourceOthers:      "其他資源",
}

var (
	gpaFloor = 3.7
	gpaCeil  = 4.3

	expiredStatuses = []models.ResourceStatus{models.StatusFull, models.StatusUnavailable}
	expiredWeights  = []float64{0.5, 0.5}
	openStatuses    = []models.ResourceStatus{models.StatusAvailable, models.StatusCanceled, models.StatusFull}
	openWeights     = []float64{0.6, 0.1, 0.3}
)

// SupplierIndex resolves a contact account to the organisation it speaks for.
type SupplierIndex map[uuid.UUID]models.Supplier

// NewSupplierIndex indexes every department and company by contact account.
func NewSupplierIndex(departments []models.Department, companies []models.Company) SupplierIndex {
	idx := make(SupplierIndex, len(departments)+len(companies))
	for _, d := range departments {
		idx[d.ContactUserID] = models.DepartmentSupplier{DepartmentID: d.ID, Contact: d.ContactUserID, Name: d.Name}
	}
	for _, c := range companies {
		idx[c.ContactUserID] = models.CompanySupplier{CompanyID: c.ID, Contact: c.ContactUserID, Name: c.Name}
	}
	return idx
}

// GenerateResources creates the resource offerings. Each has exactly one supplier drawn from the
// department and company accounts. The first NumSoftDeletedResources are soft deleted.
func GenerateResources(src *Source, cfg config.GeneratorConfig, suppliers []models.User, index SupplierIndex, now time.Time) ([]models.Resource, error) {
	if len(suppliers) == 0 && cfg.NumResources > 0 {
		return nil, fmt.Errorf("no supplier accounts to offer %d resources", cfg.NumResources)
	}
	today := helpers.DateOf(now.In(models.LocalZone))

	resources := make([]models.Resource, 0, cfg.NumResources)
	for i := 1; i <= cfg.NumResources; i++ {
		typ := pick(src, models.ResourceTypes)
		quota := src.IntRange(minQuota, maxQuota)

		contact := pick(src, suppliers)
		supplier, ok := index[contact.ID]
		if !ok {
			return nil, fmt.Errorf("account %s is not a department or company contact", contact.ID)
		}
		title := supplier.DisplayName() + titleSuffix[typ]

		deadline := helpers.AddDays(today, src.IntRange(-deadlineWindow, deadlineWindow))
		var status models.ResourceStatus
		if deadline.Before(today) {
			status = weighted(src, expiredStatuses, expiredWeights)
		} else {
			status = weighted(src, openStatuses, openWeights)
		}

		resources = append(resources, models.Resource{
			ID:          SequentialID(KindResource, i),
			Type:        typ,
			Quota:       quota,
			Supplier:    supplier,
			Title:       title,
			Deadline:    deadline,
			Description: title,
			Status:      status,
			IsDeleted:   i <= cfg.NumSoftDeletedResources,
		})
	}
	return resources, nil
}

// GenerateConditions gives each resource eligibility rows for a random non-empty set of departments.
// A department supplier always appears among its own resource's conditions.
func GenerateConditions(src *Source, resources []models.Resource, departments []models.Department) []models.ResourceCondition {
	ids := make([]string, len(departments))
	for i, d := range departments {
		ids[i] = d.ID
	}
	if len(ids) == 0 {
		return nil
	}

	var conditions []models.ResourceCondition
	for _, r := range resources {
		selected := sample(src, ids, src.IntRange(1, len(ids)))
		if ds, ok := r.Supplier.(models.DepartmentSupplier); ok && !containsString(selected, ds.DepartmentID) {
			selected[0] = ds.DepartmentID
		}

		for _, deptID := range selected {
			conditions = append(conditions, models.ResourceCondition{
				ResourceID:   r.ID,
				DepartmentID: deptID,
				AvgGPA:       gpaThreshold(src),
				CurrentGPA:   gpaThreshold(src),
				IsPoor:       r.Type == models.ResourceScholarship && src.Chance(scholarshipPoorChance),
			})
		}
	}
	return conditions
}

// gpaThreshold is present half of the time, uniform in [3.7, 4.3] to two places.
func gpaThreshold(src *Source) *decimal.Decimal {
	if !src.Chance(thresholdChance) {
		return nil
	}
	v := decimal.NewFromFloat(src.Uniform(gpaFloor, gpaCeil)).Round(2)
	return &v
}

func containsString(items []string, v string) bool {
	for _, s := range items {
		if s == v {
			return true
		}
	}
	return false
}
