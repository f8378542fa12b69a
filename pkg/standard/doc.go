/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package standard loads metadata-standard catalogs.
//
// A catalog is a set of entries keyed by attribute id. Each entry declares
// whether the attribute is required, its expected type, an optional list
// separator and join policy, and ordered content, regex and keyword rules.
//
// Catalogs are read from XML:
//
//	<cmsaf_metadata_standard>
//	  <version_number>3.0</version_number>
//	  <last_modified>2024-05-01</last_modified>
//	  <include>common.xml</include>
//	  <entry id="title" required="yes" type="s">
//	    <regex>^CM SAF .*$</regex>
//	  </entry>
//	</cmsaf_metadata_standard>
//
// or from the equivalent YAML document. A catalog may include one other
// catalog; entries of the including catalog win on id collision.
//
// Catalogs are read-only after Load returns and safe for concurrent use.
package standard
