/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lifecycle

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakeService struct {
	mu       sync.Mutex
	name     string
	startErr error
	log      *[]string
}

func (s *fakeService) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.startErr != nil {
		return s.startErr
	}

	*s.log = append(*s.log, "start "+s.name)

	return nil
}

func (s *fakeService) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	*s.log = append(*s.log, "stop "+s.name)

	return nil
}

func localListener(t *testing.T) net.Listener {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	return lis
}

func TestRunServerServesAndShutsDown(t *testing.T) {
	var events []string

	first := &fakeService{name: "a", log: &events}
	second := &fakeService{name: "b", log: &events}

	lis := localListener(t)
	hlis := localListener(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- RunServer(ctx, &ServerOptions{
			ServiceName:     "test_service",
			Handler:         handler,
			Services:        []Service{first, second},
			MaxConns:        4,
			ShutdownTimeout: 2 * time.Second,
			Listener:        lis,
			HealthListener:  hlis,
		})
	}()

	var body string

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String())
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		b, _ := io.ReadAll(resp.Body)
		body = string(b)

		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, "ok", body)

	conn, err := grpc.NewClient(hlis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	defer conn.Close()

	checkCtx, checkCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer checkCancel()

	resp, err := healthpb.NewHealthClient(conn).Check(checkCtx, &healthpb.HealthCheckRequest{Service: "test_service"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunServer did not return after cancel")
	}

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
}

func TestRunServerStartFailureStopsStarted(t *testing.T) {
	var events []string

	boom := errors.New("boom")
	ok := &fakeService{name: "a", log: &events}
	bad := &fakeService{name: "b", log: &events, startErr: boom}

	err := RunServer(context.Background(), &ServerOptions{
		ServiceName: "test_service",
		Handler:     http.NotFoundHandler(),
		Services:    []Service{ok, bad},
		Listener:    localListener(t),
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start a", "stop a"}, events)
}

func TestRunServerListenFailure(t *testing.T) {
	lis := localListener(t)
	defer lis.Close()

	err := RunServer(context.Background(), &ServerOptions{
		ServiceName: "test_service",
		Handler:     http.NotFoundHandler(),
		ListenAddr:  lis.Addr().String(),
	})

	assert.Error(t, err)
}
