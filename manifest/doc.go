// Package manifest loads host registry contents from HCL files.
//
//	template "components/user-card" {
//	  source  = "<div class=\"card\">{{yield}}</div>"
//	  manager = "glimmer"
//	}
//
//	partial "nav/menu" {
//	  source = "<ul></ul>"
//	}
//
//	component "user-card" {
//	  attrs = { tagName = "section" }
//	}
//
//	component_manager "glimmer" {}
//
//	helper "app-name" {
//	  value = "Storefront"
//	}
//
//	helper "add" {
//	  wasm {
//	    path   = "helpers/math.wasm"
//	    params = ["s64", "s64"]
//	    result = "s64"
//	  }
//	}
//
// Blocks with a module attribute are registered for lookups from that
// module only.
package manifest
