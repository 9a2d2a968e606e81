package metistest

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"testing"

	"github.com/ory/dockertest"
)

// ContainerConfig describes a throwaway database container for a test run and
// how to build a connected value of T once the container accepts connections.
type ContainerConfig[T any] struct {
	Image        string
	Tag          string
	InternalPort int
	Environment  map[string]string
	Builder      func(host string, port int) (T, error)
}

// Run starts the container, waits until the builder succeeds, and registers
// cleanup on the test. Skipped entirely in short mode.
func Run[T any](
	t *testing.T,
	config ContainerConfig[T],
) T {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container-backed test in short mode.")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("Could not construct pool: %s", err)
	}

	if err := pool.Client.Ping(); err != nil {
		t.Fatalf("Could not connect to Docker: %s", err)
	}

	env := []string{}
	for key, value := range config.Environment {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	resource, err := pool.Run(config.Image, config.Tag, env)
	if err != nil {
		t.Fatalf("Could not start resource: %s", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Fatalf("Could not purge resource: %s", err)
		}
	})

	// DOCKER_HOST wins so remote docker daemons keep working.
	address := os.Getenv("DOCKER_HOST")
	if address == "" {
		address = "tcp://" + resource.GetHostPort(fmt.Sprintf("%d/tcp", config.InternalPort))
	}

	parsed, err := url.Parse(address)
	if err != nil {
		t.Fatalf("Error parsing docker URL: %s", err)
	}

	port, _ := strconv.Atoi(parsed.Port())

	var connected T
	if err := pool.Retry(func() error {
		var err error
		connected, err = config.Builder(parsed.Hostname(), port)

		return err
	}); err != nil {
		t.Fatalf("Could not connect to database: %s", err)
	}

	return connected
}
