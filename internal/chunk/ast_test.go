package chunk

import (
	"testing"

	"github.com/Demwunz/topo/internal/model"
)

func hasChunk(chunks []model.Chunk, kind model.ChunkKind, name string) bool {
	for _, c := range chunks {
		if c.Kind == kind && c.Name == name {
			return true
		}
	}
	return false
}

func TestAST_Rust(t *testing.T) {
	src := `
use std::fmt;

struct Point {
    x: i32,
    y: i32,
}

enum Shape {
    Circle,
    Square,
}

trait Area {
    fn area(&self) -> f64;
}

impl Area for Point {
    fn area(&self) -> f64 {
        0.0
    }
}

fn main() {
    println!("hi");
}
`
	chunks := AST(src, model.LangRust)
	if len(chunks) == 0 {
		t.Fatal("expected chunks for Rust source")
	}
	if !hasChunk(chunks, model.ChunkFunction, "main") {
		t.Errorf("expected function chunk \"main\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkType, "Point") {
		t.Errorf("expected type chunk \"Point\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkType, "Shape") {
		t.Errorf("expected type chunk \"Shape\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkType, "Area") {
		t.Errorf("expected type chunk \"Area\" (trait), got %+v", chunks)
	}
	foundImpl := false
	foundImport := false
	for _, c := range chunks {
		if c.Kind == model.ChunkImpl {
			foundImpl = true
		}
		if c.Kind == model.ChunkImport {
			foundImport = true
		}
	}
	if !foundImpl {
		t.Error("expected an impl chunk")
	}
	if !foundImport {
		t.Error("expected a use-declaration import chunk")
	}
}

func TestAST_Python(t *testing.T) {
	src := `
import os
from collections import OrderedDict


class Widget:
    def render(self):
        pass


def build():
    return Widget()
`
	chunks := AST(src, model.LangPython)
	if !hasChunk(chunks, model.ChunkFunction, "build") {
		t.Errorf("expected function chunk \"build\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkFunction, "render") {
		t.Errorf("expected method chunk \"render\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkType, "Widget") {
		t.Errorf("expected class chunk \"Widget\", got %+v", chunks)
	}
	importCount := 0
	for _, c := range chunks {
		if c.Kind == model.ChunkImport {
			importCount++
		}
	}
	if importCount < 2 {
		t.Errorf("expected at least 2 import chunks (import + from-import), got %d in %+v", importCount, chunks)
	}
}

func TestAST_Java(t *testing.T) {
	src := `
import java.util.List;

public class Greeter {
    public Greeter() {
    }

    public String greet(String name) {
        return "hi " + name;
    }
}
`
	chunks := AST(src, model.LangJava)
	if !hasChunk(chunks, model.ChunkType, "Greeter") {
		t.Errorf("expected class chunk \"Greeter\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkFunction, "greet") {
		t.Errorf("expected method chunk \"greet\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkFunction, "Greeter") {
		t.Errorf("expected constructor chunk \"Greeter\", got %+v", chunks)
	}
	if !hasImportChunk(chunks) {
		t.Errorf("expected an import chunk, got %+v", chunks)
	}
}

func TestAST_C(t *testing.T) {
	src := `
#include <stdio.h>

struct Point {
    int x;
    int y;
};

int add(int a, int b) {
    return a + b;
}
`
	chunks := AST(src, model.LangC)
	if !hasChunk(chunks, model.ChunkFunction, "add") {
		t.Errorf("expected function chunk \"add\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkType, "Point") {
		t.Errorf("expected struct chunk \"Point\", got %+v", chunks)
	}
	if !hasImportChunk(chunks) {
		t.Errorf("expected a #include import chunk, got %+v", chunks)
	}
}

func TestAST_TypeScript(t *testing.T) {
	src := `
import { Component } from "framework";

interface Props {
    name: string;
}

class Button {
    render() {
        return null;
    }
}

function create() {
    return new Button();
}
`
	chunks := AST(src, model.LangTypeScript)
	if !hasChunk(chunks, model.ChunkFunction, "create") {
		t.Errorf("expected function chunk \"create\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkType, "Props") {
		t.Errorf("expected interface chunk \"Props\", got %+v", chunks)
	}
	if !hasChunk(chunks, model.ChunkType, "Button") {
		t.Errorf("expected class chunk \"Button\", got %+v", chunks)
	}
	if !hasImportChunk(chunks) {
		t.Errorf("expected an import chunk, got %+v", chunks)
	}
}

func TestAST_UnsupportedLanguageFallsBackToNil(t *testing.T) {
	chunks := AST("func main() {}", model.LangGo)
	if chunks != nil {
		t.Errorf("AST for an unbound grammar should return nil, got %+v", chunks)
	}
}

func TestAST_EmptyContentYieldsNoMatches(t *testing.T) {
	chunks := AST("", model.LangRust)
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty source, got %+v", chunks)
	}
}

func hasImportChunk(chunks []model.Chunk) bool {
	for _, c := range chunks {
		if c.Kind == model.ChunkImport {
			return true
		}
	}
	return false
}
