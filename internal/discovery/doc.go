// Package discovery finds receivers on the local network with mDNS.
//
// A receiver started with advertising enabled registers a
// "_casttompv._tcp" service. Browsing for that type yields the host and
// port the sender needs, so the address does not have to be typed in.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	receivers, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, r := range receivers {
//	    fmt.Printf("%s at %s\n", r.Instance, r.Address())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Sender and receiver must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
