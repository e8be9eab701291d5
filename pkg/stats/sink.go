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

package stats

import (
	"context"

	"github.com/geboyr/csc5201-final/pkg/telemetry"
)

// LocalSink appends the stats service's own reports straight into store, so
// the service does not have to call itself over HTTP.
func LocalSink(store Store) telemetry.Sink {
	return telemetry.SinkFunc(func(ctx context.Context, e telemetry.Event) error {
		_, err := store.Append(ctx, e.ServiceName, e.ResponseTime)

		return err
	})
}
