package main

//go:generate echo "Building Mini-App bootstrapper..."
//go:generate mkdir -p ../frontend/dist
//go:generate bash -c "cp \"$$(go env GOROOT)/lib/wasm/wasm_exec.js\" ../frontend/dist/ 2>/dev/null || cp \"$$(go env GOROOT)/misc/wasm/wasm_exec.js\" ../frontend/dist/"
//go:generate bash -c "GOOS=js GOARCH=wasm go build -o ../frontend/dist/bootstrap.wasm ./webapp"
//go:generate echo "frontend/dist/wasm_exec.js and frontend/dist/bootstrap.wasm ready"

// The index page loads /static/wasm_exec.js and /static/bootstrap.wasm from
// STATIC_DIR (./frontend/dist by default). Produce both with
//
// go generate ./...
//
// from the project root directory.
