package shared

import (
	"context"
	"reflect"
	"strings"

	"trattoria/shared/cache"
	"trattoria/shared/dto"

	"github.com/rs/zerolog/log"
)

func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := redisCache.Clear(ctx, prefix+"*"); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}

// TransformFields converts the db-tagged fields of a partial-update struct
// into a column/value map. Zero-valued fields are treated as absent; fields
// implementing dto.OptionalField are included whenever the caller supplied
// them, even as an explicit null.
func TransformFields(data interface{}) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := 0; index < val.NumField(); index++ {
		field := val.Field(index)

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		if optional, ok := field.Interface().(dto.OptionalField); ok {
			if optional.IsPresent() {
				updatedFields[fieldName] = optional.Interface()
			}

			continue
		}

		if field.Kind() == reflect.Pointer {
			if !field.IsNil() {
				updatedFields[fieldName] = field.Elem().Interface()
			}

			continue
		}

		if field.IsZero() {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	return updatedFields
}

func FilterByID(id int64, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}
