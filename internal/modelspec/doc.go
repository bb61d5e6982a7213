/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package modelspec implements model persistence. A Document is the canonical
// on-disk form of an editor session: the declared variables, the states with
// their positions and valuations, and the links with their arrow flags.
// Documents are stored as JSON (.json) or YAML (.yaml/.yml), validated
// against an embedded JSON Schema, and written transactionally with
// timestamped backups so a crash mid-save never loses the previous version.
package modelspec
