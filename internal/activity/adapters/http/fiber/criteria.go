package fiber

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"activity-dashboard-service/internal/activity/core/domain"
	"activity-dashboard-service/internal/activity/core/usecase"

	"github.com/gofiber/fiber/v2"
)

var ErrInvalidCriteria = errors.New("invalid criteria")

const dateLayout = "2006-01-02"

// filterParams maps query parameter names to filter fields.
var filterParams = map[string]domain.Field{
	"origin":   domain.FieldOrigin,
	"locality": domain.FieldLocality,
	"model":    domain.FieldModel,
	"tag":      domain.FieldTag,
	"concept":  domain.FieldConcept,
}

// CriteriaFromQuery reads from/to (YYYY-MM-DD) and the multi-valued filter
// parameters. Values may be repeated (?origin=a&origin=b) or comma separated.
// Missing parameters are left for the table defaults.
func CriteriaFromQuery(c *fiber.Ctx) (usecase.CriteriaInput, error) {
	in := usecase.CriteriaInput{Values: map[domain.Field][]string{}}

	var err error
	if in.From, err = queryDate(c, "from"); err != nil {
		return in, err
	}
	if in.To, err = queryDate(c, "to"); err != nil {
		return in, err
	}

	args := c.Context().QueryArgs()
	for param, field := range filterParams {
		var vals []string
		for _, raw := range args.PeekMulti(param) {
			for _, v := range strings.Split(string(raw), ",") {
				if v = strings.TrimSpace(v); v != "" {
					vals = append(vals, v)
				}
			}
		}
		if len(vals) > 0 {
			in.Values[field] = vals
		}
	}
	return in, nil
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", ErrInvalidCriteria, key, raw)
	}
	return &t, nil
}
