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

package recipe

import "strings"

const promptTemplate = "Below is the list of ingredients I have available. " +
	"Please suggest a recipe using these ingredients. " +
	"You do not need to use all of them, but you must not use any ingredient that is not on my list. " +
	"The ingredients I have are: "

// BuildPrompt builds the completion prompt for names. The restriction to the
// listed ingredients is an instruction to the provider only; the reply is not
// checked against the list.
func BuildPrompt(names []string) string {
	return promptTemplate + strings.Join(names, ", ") + "."
}
