// Package serialization saves and loads trained networks as model files.
//
// A model file holds the network text format (see network.WriteTo):
//
//	1 <L>
//	<L layer widths>
//	<L-1 bias blocks>
//	<L-1 weight blocks>
//
// Save writes the file atomically (temp file + rename) together with a
// SHA-256 sidecar "<path>.sha256" in sha256sum format. Load verifies the
// sidecar when one is present.
//
// Example usage:
//
//	if err := serialization.Save("digits.net", net); err != nil {
//	    log.Fatal(err)
//	}
//
//	net, err := serialization.Load("digits.net")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := serialization.ValidateTopology(net, 784, 10); err != nil {
//	    log.Fatal(err)
//	}
package serialization
