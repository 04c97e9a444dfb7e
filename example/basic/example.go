package example

import (
	"embed"

	"github.com/vippsas/protocode"
)

//go:embed *.proto
//go:embed */*.proto
var protofs embed.FS

var Protos = protocode.MustInclude(protocode.Options{}, protofs)
