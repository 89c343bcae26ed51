// containers.go
//
// A role-based records service for notary signing operations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notary-records.
// notary-records is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notary-records is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notary-records.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/localnerve/notary-records/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Default images for the containerized stores
const (
	PostgresImage = "postgres:16-alpine"
	MySQLImage    = "mysql:8.4"
	RedisImage    = "redis:7-alpine"
)

// ContainerOptions selects the stores to start
type ContainerOptions struct {
	DBType   string // postgres or mysql
	DBImage  string // defaults per DBType
	Database string
	User     string
	Password string
	Redis    bool
	// Logf receives progress lines. Optional.
	Logf func(format string, args ...any)
}

// Containers is a running set of store containers on a private network
type Containers struct {
	Network *testcontainers.DockerNetwork
	DB      testcontainers.Container
	Redis   testcontainers.Container

	// Config points at the mapped host ports
	Config *config.Config
}

// DockerAvailable reports whether a docker daemon answers on the environment's socket
func DockerAvailable(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return err
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err = cli.Ping(ctx)
	return err
}

// StartContainers starts the database, and redis when asked, and returns a
// Config ready for database.Connect. On failure everything already started
// is terminated.
func StartContainers(ctx context.Context, opts ContainerOptions) (*Containers, error) {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if opts.Database == "" {
		opts.Database = "notary"
	}
	if opts.User == "" {
		opts.User = "notary"
	}
	if opts.Password == "" {
		opts.Password = "notary-secret"
	}

	tc := &Containers{}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	tc.Network = nw

	port, env, dataDir, err := dbSettings(opts)
	if err != nil {
		tc.Terminate(ctx)
		return nil, err
	}
	image := opts.DBImage
	if image == "" {
		image = PostgresImage
		if opts.DBType == "mysql" {
			image = MySQLImage
		}
	}

	logf("Starting %s (%s)", opts.DBType, image)
	db, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(port)},
			Env:          env,
			WaitingFor:   wait.ForListeningPort(port).WithStartupTimeout(90 * time.Second),
			Networks:     []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {"db"},
			},
			// Data lives in memory, the container is disposable
			HostConfigModifier: func(hostConfig *container.HostConfig) {
				hostConfig.Tmpfs = map[string]string{dataDir: "rw"}
			},
		},
		Started: true,
	})
	if err != nil {
		tc.Terminate(ctx)
		return nil, fmt.Errorf("failed to start %s: %w", opts.DBType, err)
	}
	tc.DB = db

	host, err := db.Host(ctx)
	if err != nil {
		tc.Terminate(ctx)
		return nil, err
	}
	mapped, err := db.MappedPort(ctx, port)
	if err != nil {
		tc.Terminate(ctx)
		return nil, err
	}

	tc.Config = &config.Config{
		ServiceName:       "notary-records",
		DBType:            opts.DBType,
		DBHost:            host,
		DBPort:            mapped.Port(),
		DBDatabase:        opts.Database,
		DBUser:            opts.User,
		DBPassword:        opts.Password,
		DBConnectionLimit: 5,
	}
	logf("DB_HOST=%s DB_PORT=%s", host, mapped.Port())

	if opts.Redis {
		redisPort := nat.Port("6379/tcp")
		logf("Starting redis (%s)", RedisImage)
		redis, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        RedisImage,
				ExposedPorts: []string{string(redisPort)},
				WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
				Networks:     []string{nw.Name},
			},
			Started: true,
		})
		if err != nil {
			tc.Terminate(ctx)
			return nil, fmt.Errorf("failed to start redis: %w", err)
		}
		tc.Redis = redis

		redisHost, _ := redis.Host(ctx)
		redisMapped, err := redis.MappedPort(ctx, redisPort)
		if err != nil {
			tc.Terminate(ctx)
			return nil, err
		}
		tc.Config.RedisAddr = fmt.Sprintf("%s:%s", redisHost, redisMapped.Port())
		logf("REDIS_ADDR=%s", tc.Config.RedisAddr)
	}

	return tc, nil
}

// dbSettings returns the listening port, init environment and data directory for the image
func dbSettings(opts ContainerOptions) (nat.Port, map[string]string, string, error) {
	switch opts.DBType {
	case "postgres":
		port, err := nat.NewPort("tcp", "5432")
		return port, map[string]string{
			"POSTGRES_DB":       opts.Database,
			"POSTGRES_USER":     opts.User,
			"POSTGRES_PASSWORD": opts.Password,
		}, "/var/lib/postgresql/data", err
	case "mysql":
		port, err := nat.NewPort("tcp", "3306")
		return port, map[string]string{
			"MYSQL_ROOT_PASSWORD": opts.Password,
			"MYSQL_DATABASE":      opts.Database,
			"MYSQL_USER":          opts.User,
			"MYSQL_PASSWORD":      opts.Password,
		}, "/var/lib/mysql", err
	}
	return "", nil, "", fmt.Errorf("unsupported container database: %q", opts.DBType)
}

// Terminate stops every container and removes the network
func (tc *Containers) Terminate(ctx context.Context) error {
	var errs []error
	if tc.Redis != nil {
		if err := tc.Redis.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if tc.DB != nil {
		if err := tc.DB.Terminate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			errs = append(errs, fmt.Errorf("network: %w", err))
		}
	}
	return errors.Join(errs...)
}
