package common

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
)

// IpCidr is a network in CIDR notation that can be used as a pflag value
// and as a JSON string.
type IpCidr struct {
	net.IPNet
}

func (s *IpCidr) IP() net.IP {
	return s.IPNet.IP
}

func (s *IpCidr) Prefix() int {
	ones, _ := s.Mask.Size()
	return ones
}

func (s *IpCidr) Type() string {
	return "ip-cidr"
}

func (s *IpCidr) Set(raw string) error {
	n, err := ParseIpCidr(raw)
	if err != nil {
		return err
	}

	*s = n
	return nil
}

func (s IpCidr) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IPNet.String())
}

func (s *IpCidr) UnmarshalJSON(b []byte) error {
	var str string
	err := json.Unmarshal(b, &str)
	if err != nil {
		return err
	}

	return s.Set(str)
}

// ParseIpCidr parses a network like 10.0.0.0/8. The network address is kept
// as the IP, host bits are not masked off.
func ParseIpCidr(s string) (IpCidr, error) {
	ip, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		return IpCidr{}, fmt.Errorf("failed to parse network: %w", err)
	}

	ipnet.IP = ip
	return IpCidr{IPNet: *ipnet}, nil
}

// ParseCIDRList parses a whitespace separated list of networks, the format
// the portal uses for "externalNetworks".
func ParseCIDRList(s string) ([]IpCidr, error) {
	var result []IpCidr
	for _, field := range strings.Fields(s) {
		n, err := ParseIpCidr(field)
		if err != nil {
			return nil, fmt.Errorf("invalid network '%s': %w", field, err)
		}
		result = append(result, n)
	}

	return result, nil
}

// JoinCIDRs formats networks the way ParseCIDRList reads them.
func JoinCIDRs(nets []IpCidr) string {
	parts := make([]string, 0, len(nets))
	for i := range nets {
		parts = append(parts, nets[i].String())
	}

	return strings.Join(parts, " ")
}

// ParseIPv4 returns the 4 byte form of s, or nil if s is not an IPv4 address.
// IPv4-mapped IPv6 notation such as "::ffff:10.0.0.1" is not accepted.
func ParseIPv4(s string) net.IP {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		return nil
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return nil
	}

	return ip.To4()
}

// ParseIPv4Mask parses a dotted quad netmask. Non-contiguous masks are rejected.
func ParseIPv4Mask(s string) (net.IPMask, error) {
	ip := ParseIPv4(s)
	if ip == nil {
		return nil, fmt.Errorf("'%s' is not a dotted IPv4 netmask", s)
	}

	mask := net.IPMask(ip)
	if _, bits := mask.Size(); bits == 0 {
		return nil, fmt.Errorf("'%s' is not a contiguous netmask", s)
	}

	return mask, nil
}

// OffsetIPv4 adds offset to the last octet of ip. The octet wraps around at
// 256; carrying into the third octet does not happen.
func OffsetIPv4(ip net.IP, offset int) net.IP {
	v4 := ip.To4()
	if v4 == nil {
		return nil
	}

	result := make(net.IP, net.IPv4len)
	copy(result, v4)
	result[3] = byte((int(v4[3]) + offset) % 256)
	return result
}
