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

package catalog

import "errors"

var (
	// ErrNotFound is returned when deleting an ingredient id that does not exist.
	ErrNotFound = errors.New("ingredient not found")
	// ErrNameRequired is returned when adding an ingredient without a name.
	ErrNameRequired = errors.New("name not provided")
	// ErrUnexpectedStatus is returned by Client for non-2xx answers.
	ErrUnexpectedStatus = errors.New("unexpected status from ingredient service")
)
