package pbutil_test

import (
	"fmt"
	"log"

	"github.com/cockroachdb/pebble/vfs"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/fjordstone/pbfile/pkg/pbutil"
)

// Example demonstrates the round trip through a durable container file.
func Example() {
	fs := vfs.NewMem()

	msg := wrapperspb.String("hello")
	if err := pbutil.WritePBContainerToPath(fs, "greeting.pb", "demofile", msg, pbutil.NoSync); err != nil {
		log.Fatal(err)
	}

	out := &wrapperspb.StringValue{}
	if err := pbutil.ReadPBContainerFromPath(fs, "greeting.pb", "demofile", out); err != nil {
		log.Fatal(err)
	}

	fmt.Println(out.GetValue())
	// Output: hello
}
