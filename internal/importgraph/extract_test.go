package importgraph

import (
	"testing"

	"github.com/Demwunz/topo/internal/model"
)

func TestExtractImports_Rust(t *testing.T) {
	content := "use crate::auth::login;\nuse std::collections::HashMap;\nmod db;\n"
	imports := ExtractImports(content, model.LangRust)
	if !contains(imports, "auth") {
		t.Fatalf("expected auth from crate:: use, got %v", imports)
	}
	if !contains(imports, "db") {
		t.Fatalf("expected db from mod statement, got %v", imports)
	}
}

func TestExtractImports_Python(t *testing.T) {
	content := "import os\nfrom myapp.auth import login\nfrom . import utils\n"
	imports := ExtractImports(content, model.LangPython)
	if !contains(imports, "os") {
		t.Fatalf("expected os, got %v", imports)
	}
	if !contains(imports, "myapp.auth") {
		t.Fatalf("expected myapp.auth, got %v", imports)
	}
}

func TestExtractImports_JS(t *testing.T) {
	content := "import { foo } from './utils';\nconst bar = require('./handler');\n"
	imports := ExtractImports(content, model.LangJavaScript)
	if !contains(imports, "./utils") {
		t.Fatalf("expected ./utils, got %v", imports)
	}
	if !contains(imports, "./handler") {
		t.Fatalf("expected ./handler, got %v", imports)
	}
}

func TestExtractImports_Go(t *testing.T) {
	content := "package main\n\nimport (\n\t\"fmt\"\n\t\"myapp/pkg/http\"\n)\n"
	imports := ExtractImports(content, model.LangGo)
	if !contains(imports, "fmt") || !contains(imports, "myapp/pkg/http") {
		t.Fatalf("got %v", imports)
	}
}

func TestExtractImports_GoSingle(t *testing.T) {
	content := "package main\n\nimport \"fmt\"\n"
	imports := ExtractImports(content, model.LangGo)
	if !contains(imports, "fmt") {
		t.Fatalf("got %v", imports)
	}
}

func TestExtractImports_Java(t *testing.T) {
	content := "import java.util.List;\nimport static org.junit.Assert.assertEquals;\n"
	imports := ExtractImports(content, model.LangJava)
	if !contains(imports, "java.util.List") {
		t.Fatalf("got %v", imports)
	}
	if !contains(imports, "org.junit.Assert.assertEquals") {
		t.Fatalf("expected static import stripped of 'static ', got %v", imports)
	}
}

func TestExtractImports_CInclude(t *testing.T) {
	content := "#include \"auth.h\"\n#include <stdio.h>\n"
	imports := ExtractImports(content, model.LangC)
	if !contains(imports, "auth.h") {
		t.Fatalf("expected auth.h (quoted include only), got %v", imports)
	}
	if contains(imports, "stdio.h") {
		t.Fatalf("angle-bracket system include should not be captured, got %v", imports)
	}
}

func TestExtractImports_Ruby(t *testing.T) {
	content := "require 'json'\nrequire_relative './helper'\n"
	imports := ExtractImports(content, model.LangRuby)
	if !contains(imports, "json") || !contains(imports, "./helper") {
		t.Fatalf("got %v", imports)
	}
}

func TestExtractImports_Swift(t *testing.T) {
	content := "import Foundation\n@testable import MyApp\n"
	imports := ExtractImports(content, model.LangSwift)
	if !contains(imports, "Foundation") || !contains(imports, "MyApp") {
		t.Fatalf("got %v", imports)
	}
}

func TestExtractImports_Elixir(t *testing.T) {
	content := "alias MyApp.Auth\nimport MyApp.Utils\nuse MyApp.Handler\n"
	imports := ExtractImports(content, model.LangElixir)
	if !contains(imports, "MyApp.Auth") || !contains(imports, "MyApp.Utils") || !contains(imports, "MyApp.Handler") {
		t.Fatalf("got %v", imports)
	}
}

func TestExtractImports_PHP(t *testing.T) {
	content := "use App\\Auth\\Login;\nrequire 'config.php';\n"
	imports := ExtractImports(content, model.LangPHP)
	if !contains(imports, "App\\Auth\\Login") {
		t.Fatalf("got %v", imports)
	}
	if !contains(imports, "config.php") {
		t.Fatalf("got %v", imports)
	}
}

func TestExtractImports_Scala(t *testing.T) {
	content := "import scala.collection.mutable.Map\n"
	imports := ExtractImports(content, model.LangScala)
	if !contains(imports, "scala.collection.mutable.Map") {
		t.Fatalf("got %v", imports)
	}
}

func TestExtractImports_R(t *testing.T) {
	content := "library(dplyr)\nrequire(\"tidyr\")\nsource('helpers.R')\n"
	imports := ExtractImports(content, model.LangR)
	if !contains(imports, "dplyr") || !contains(imports, "tidyr") || !contains(imports, "helpers.R") {
		t.Fatalf("got %v", imports)
	}
}

func TestExtractImports_Shell(t *testing.T) {
	content := "source ./lib.sh\n. ./config.sh\nsource \"$HOME/other.sh\"\n"
	imports := ExtractImports(content, model.LangShell)
	if !contains(imports, "./lib.sh") || !contains(imports, "./config.sh") {
		t.Fatalf("got %v", imports)
	}
	if contains(imports, "$HOME/other.sh") {
		t.Fatalf("variable-prefixed paths should be skipped, got %v", imports)
	}
}

func TestExtractImports_UnknownLanguage(t *testing.T) {
	imports := ExtractImports("whatever", model.Language("unknown"))
	if imports != nil {
		t.Fatalf("expected nil for unrecognized language, got %v", imports)
	}
}
