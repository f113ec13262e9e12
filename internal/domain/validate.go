package domain

// Validation is a plain rule list over the merged record, not a schema
// hierarchy: each rule names the field it guards and reports a reason
// when violated. Rules run in order and every violation is collected so
// one response lists all problems.

const minNameLength = 3

type fieldRule struct {
	field string
	check func(p Product) (reason string, violated bool)
}

var productRules = []fieldRule{
	{"name", func(p Product) (string, bool) {
		if len(p.Name) < minNameLength {
			return "must be at least 3 characters", true
		}
		return "", false
	}},
	{"price", func(p Product) (string, bool) {
		if p.Price < 0 {
			return "must be non-negative", true
		}
		return "", false
	}},
	{"stock", func(p Product) (string, bool) {
		if p.Stock < 0 {
			return "must be non-negative", true
		}
		return "", false
	}},
	{"discount_percent", func(p Product) (string, bool) {
		if p.DiscountPercent != nil && (*p.DiscountPercent < 0 || *p.DiscountPercent > 100) {
			return "must be between 0 and 100", true
		}
		return "", false
	}},
}

func runRules(p Product, skip map[string]bool) []FieldError {
	var errs []FieldError
	for _, r := range productRules {
		if skip[r.field] {
			continue
		}
		if reason, violated := r.check(p); violated {
			errs = append(errs, FieldError{Field: r.field, Reason: reason})
		}
	}
	return errs
}

// ValidateCreate checks a create request and returns a fully populated
// candidate record. Required fields that are absent and present fields
// that violate a rule are reported together in a single ValidationError.
// IsActive is derived from the candidate's stock; the ID and timestamps
// are left for the service to assign.
func ValidateCreate(req CreateProductRequest) (Product, error) {
	var errs []FieldError
	missing := make(map[string]bool)

	if req.Name == nil {
		errs = append(errs, FieldError{Field: "name", Reason: "is required"})
		missing["name"] = true
	}
	if req.Price == nil {
		errs = append(errs, FieldError{Field: "price", Reason: "is required"})
		missing["price"] = true
	}
	if req.Stock == nil {
		errs = append(errs, FieldError{Field: "stock", Reason: "is required"})
		missing["stock"] = true
	}

	candidate := Product{DiscountPercent: req.DiscountPercent}
	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Price != nil {
		candidate.Price = *req.Price
	}
	if req.Stock != nil {
		candidate.Stock = *req.Stock
	}

	errs = append(errs, runRules(candidate, missing)...)
	if len(errs) > 0 {
		return Product{}, &ValidationError{Fields: errs}
	}

	candidate.IsActive = candidate.Stock > 0
	return candidate, nil
}

// ApplyPatch merges the supplied fields of patch onto existing and
// re-validates the merged record, so a patch is judged against the full
// resulting state rather than in isolation.
//
// The stock/is_active invariant is enforced on the merged result: if the
// merged stock is 0 and the patch explicitly asks for is_active=true the
// patch is rejected, otherwise is_active is coerced to false. A patch
// that restocks a product does not reactivate it implicitly.
func ApplyPatch(existing Product, patch UpdateProductRequest) (Product, error) {
	merged := existing
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Stock != nil {
		merged.Stock = *patch.Stock
	}
	if patch.IsActive != nil {
		merged.IsActive = *patch.IsActive
	}
	if patch.DiscountPercent != nil {
		merged.DiscountPercent = patch.DiscountPercent
	}

	errs := runRules(merged, nil)

	if merged.Stock == 0 && merged.IsActive {
		if patch.IsActive != nil && *patch.IsActive {
			errs = append(errs, FieldError{Field: "is_active", Reason: "cannot be true when stock is 0"})
		} else {
			merged.IsActive = false
		}
	}

	if len(errs) > 0 {
		return Product{}, &ValidationError{Fields: errs}
	}
	return merged, nil
}
