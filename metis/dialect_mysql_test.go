package metis_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lunagic/metis/metis"
	"github.com/lunagic/metis/metistest"
)

func Test_DialectMySQL_9(t *testing.T) {
	t.Parallel()
	testSuite(t, setupMySQL(t, "mysql", "9"))
}

func Test_DialectMySQL_8(t *testing.T) {
	t.Parallel()
	testSuite(t, setupMySQL(t, "mysql", "8"))
}

func setupMySQL(
	t *testing.T,
	image string,
	tag string,
) metis.Dialect {
	name := uuid.NewString()
	pass := uuid.NewString()

	return metistest.Run(
		t,
		metistest.ContainerConfig[metis.Dialect]{
			Image:        image,
			Tag:          tag,
			InternalPort: 3306,
			Environment: map[string]string{
				"MYSQL_ROOT_PASSWORD": pass,
				"MYSQL_DATABASE":      name,
			},
			Builder: func(host string, port int) (metis.Dialect, error) {
				dialect := metis.NewDialectMySQL(metis.DialectMySQLConfig{
					Host: host,
					Port: port,
					User: "root",
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
