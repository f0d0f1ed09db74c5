package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	var print bool

	options := GeneratorOptions{
		Args: os.Args[1:],
	}

	flag := flag.NewFlagSet("gen-enum", flag.ContinueOnError)

	flag.StringVar(&options.Type, "type", "", "type name")
	flag.BoolVar(&options.GenerateFlag, "generate-flag", false, "generate methods for the pflag.Value interface")
	flag.BoolVar(&options.GenerateText, "generate-text", false, "generate encoding.TextMarshaler and encoding.TextUnmarshaler methods")
	flag.BoolVar(&options.Pointer, "pointer", false, "generate String and lookups on pointer receivers")
	flag.StringVar(&options.Output, "output", "", "output file name; default srcdir/<lowercase type>_enum.go")
	flag.StringVar(&options.BuildTags, "tags", "", "comma-separated list of build tags to apply")
	flag.BoolVar(&print, "print", false, "print the generated code to stdout")

	if err := flag.Parse(os.Args[1:]); err != nil {
		log.Fatalf("%+v", err)
	}

	if len(options.Type) == 0 {
		log.Printf("-type is required")
		os.Exit(1)
	}

	options.Dir = "."
	if flag.NArg() > 0 {
		options.Dir = flag.Arg(0)
	}

	generator := NewGenerator(options)
	src, err := generator.Run()
	if print && src != nil {
		fmt.Println(string(src))
	}

	if err != nil {
		log.Fatalf("%+v", err)
	}
}
