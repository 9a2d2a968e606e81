package metis_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lunagic/metis/metis"
	"github.com/lunagic/metis/metistest"
)

func Test_DialectPostgres_17(t *testing.T) {
	t.Parallel()
	testSuite(t, setupPostgres(t, "postgres", "17"))
}

func Test_DialectPostgres_16(t *testing.T) {
	t.Parallel()
	testSuite(t, setupPostgres(t, "postgres", "16"))
}

func Test_DialectPostgres_15(t *testing.T) {
	t.Parallel()
	testSuite(t, setupPostgres(t, "postgres", "15"))
}

func setupPostgres(
	t *testing.T,
	image string,
	tag string,
) metis.Dialect {
	name := uuid.NewString()
	pass := uuid.NewString()
	user := uuid.NewString()

	return metistest.Run(
		t,
		metistest.ContainerConfig[metis.Dialect]{
			Image:        image,
			Tag:          tag,
			InternalPort: 5432,
			Environment: map[string]string{
				"POSTGRES_USER":     user,
				"POSTGRES_PASSWORD": pass,
				"POSTGRES_DB":       name,
			},
			Builder: func(host string, port int) (metis.Dialect, error) {
				dialect := metis.NewDialectPostgres(metis.DialectPostgresConfig{
					Host: host,
					Port: port,
					User: user,
					Pass: pass,
					Name: name,
				})

				db, err := dialect.Open()
				if err != nil {
					return nil, err
				}

				if err := db.Ping(); err != nil {
					_ = db.Close()

					return nil, err
				}

				_ = db.Close()

				return dialect, nil
			},
		},
	)
}
