package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
)

// UpdatedAt must stay nil until the first edit, so the ORM may not stamp it
// during create or save. Without the autoUpdateTime:false tag the field name
// alone opts it into update-time tracking.
func TestPost_UpdatedAtNotManagedByORM(t *testing.T) {
	s, err := schema.Parse(&domain.Post{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := s.LookUpField("UpdatedAt")
	require.NotNil(t, field)
	require.Zero(t, field.AutoUpdateTime, "UpdatedAt must not be auto-set by the ORM")

	created := s.LookUpField("CreatedAt")
	require.NotNil(t, created)
	require.NotZero(t, created.AutoCreateTime)
}
