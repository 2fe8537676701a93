// Package common provides family-specific process.Recipe builders shared
// across CIN launchers: java -jar, python -m, julia script.jl, node
// script.js, and plain executables.
package common

import "github.com/ARCJ137442/BabelNAR-go/process"

// JavaJar builds a recipe that runs `java -jar <jarPath> <args...>`.
func JavaJar(javaBin, jarPath string, args []string, cwd string) process.Recipe {
	return process.Recipe{
		ExecPath: orDefault(javaBin, "java"),
		Args:     append([]string{"-jar", jarPath}, args...),
		Cwd:      cwd,
	}
}

// PythonModule builds a recipe that runs `python -m <module> <args...>`.
func PythonModule(pythonBin, module string, args []string, cwd string) process.Recipe {
	return process.Recipe{
		ExecPath: orDefault(pythonBin, "python"),
		Args:     append([]string{"-m", module}, args...),
		Cwd:      cwd,
	}
}

// PythonScript builds a recipe that runs `python <scriptPath> <args...>`,
// used by CINs (e.g. NARS-Python) that are not packaged as a module.
func PythonScript(pythonBin, scriptPath string, args []string, cwd string) process.Recipe {
	return process.Recipe{
		ExecPath: orDefault(pythonBin, "python"),
		Args:     append([]string{scriptPath}, args...),
		Cwd:      cwd,
	}
}

// JuliaScript builds a recipe that runs `julia <scriptPath> <args...>`.
func JuliaScript(juliaBin, scriptPath string, args []string, cwd string) process.Recipe {
	return process.Recipe{
		ExecPath: orDefault(juliaBin, "julia"),
		Args:     append([]string{scriptPath}, args...),
		Cwd:      cwd,
	}
}

// NodeScript builds a recipe that runs `node <scriptPath> <args...>`.
func NodeScript(nodeBin, scriptPath string, args []string, cwd string) process.Recipe {
	return process.Recipe{
		ExecPath: orDefault(nodeBin, "node"),
		Args:     append([]string{scriptPath}, args...),
		Cwd:      cwd,
	}
}

// Executable builds a recipe that runs a plain executable directly.
func Executable(execPath string, args []string, cwd string) process.Recipe {
	return process.Recipe{ExecPath: execPath, Args: args, Cwd: cwd}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
